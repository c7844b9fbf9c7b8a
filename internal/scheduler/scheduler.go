// Package scheduler runs the scan and watchlist refresh tasks on cron
// schedules and pushes the results to Telegram.
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"SwingScout/internal/model"
	"SwingScout/internal/notifier"
	"SwingScout/internal/scan"
	"SwingScout/internal/store"
)

// Notifier is the outbound alert channel. A nil Notifier disables alerts.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scan.Scanner
	Store    store.Store
	Notifier Notifier
	Params   scan.Params
	Ctx      context.Context

	logger zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scan.Scanner, st store.Store, n Notifier, p scan.Params, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Store:    st,
		Notifier: n,
		Params:   p,
		Ctx:      ctx,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the scan and refresh tasks.
func (s *Scheduler) RegisterAll(scanCron, refreshCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.logger.Info().Msg("running scheduled scan")
	matches, err := s.Scanner.Run(s.Ctx, s.Params)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled scan failed")
		s.trySend(fmt.Sprintf("❌ Scheduled scan failed: %v", err))
		return
	}
	s.trySend(notifier.FormatScanReport(matches))
}

func (s *Scheduler) refreshTask() {
	s.logger.Info().Msg("running scheduled refresh")

	before, err := s.watchStatuses()
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled refresh failed")
		return
	}

	processed, err := s.Scanner.RefreshTracked(s.Ctx, s.Params.ScoreThreshold)
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled refresh failed")
		s.trySend(fmt.Sprintf("❌ Watchlist refresh failed: %v", err))
		return
	}
	s.logger.Info().Int("processed", processed).Msg("scheduled refresh finished")

	triggered, err := s.newlyTriggered(before)
	if err != nil {
		s.logger.Error().Err(err).Msg("read watchlist after refresh")
		return
	}
	if len(triggered) > 0 {
		s.trySend(notifier.FormatTriggeredAlert(triggered))
	}
}

// watchStatuses captures the current status of every watchlist item so the
// refresh task can report only transitions, not standing state.
func (s *Scheduler) watchStatuses() (map[int64]model.WatchStatus, error) {
	items, err := s.Store.ListWatchlist()
	if err != nil {
		return nil, err
	}
	statuses := make(map[int64]model.WatchStatus, len(items))
	for _, item := range items {
		statuses[item.ID] = item.Status
	}
	return statuses, nil
}

func (s *Scheduler) newlyTriggered(before map[int64]model.WatchStatus) ([]string, error) {
	items, err := s.Store.ListWatchlist()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range items {
		if item.Status == model.StatusTriggered && before[item.ID] != model.StatusTriggered {
			out = append(out, item.Symbol)
		}
	}
	return out, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "Scan started."
	case "/refresh":
		go s.refreshTask()
		return "Watchlist refresh started."
	case "/watchlist":
		items, err := s.Store.ListWatchlist()
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		if len(items) == 0 {
			return "Watchlist is empty."
		}
		var b strings.Builder
		b.WriteString("📋 <b>Watchlist</b>\n\n")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("• %s — %s\n", item.Symbol, item.Status))
		}
		return b.String()
	default:
		return "Available commands:\n• /scan\n• /refresh\n• /watchlist"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
