package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SwingScout/internal/api"
	"SwingScout/internal/notifier"
	"SwingScout/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with scheduled scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var tn *notifier.TelegramNotifier
		var alerts scheduler.Notifier
		if a.cfg.TelegramEnabled() {
			tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.logger)
			alerts = tn
		} else {
			a.logger.Info().Msg("telegram not configured, alerts disabled")
		}

		sched := scheduler.NewScheduler(ctx, a.scanner, a.store, alerts, a.scanParams(), a.logger)
		if err := sched.RegisterAll(a.cfg.Schedule.ScanCron, a.cfg.Schedule.RefreshCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
		}

		if os.Getenv("RUN_ON_START") == "true" {
			a.logger.Info().Msg("RUN_ON_START enabled, scanning now")
			go sched.RunScanNow()
		}

		srv := api.NewServer(a.scanner, a.store, a.scanParams(), a.logger)
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run(a.cfg.Server.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
			cancel()
			return nil
		}
	},
}
