package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"SwingScout/internal/config"
	"SwingScout/internal/metrics"
	"SwingScout/internal/news"
	"SwingScout/internal/provider"
	"SwingScout/internal/scan"
	"SwingScout/internal/store"
)

// app bundles the wired components every subcommand needs.
type app struct {
	cfg     *config.Config
	store   store.Store
	scanner *scan.Scanner
	logger  zerolog.Logger
}

func buildApp() (*app, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	prov := provider.NewPolygonProvider(provider.PolygonOptions{
		BaseURL:        cfg.Provider.BaseURL,
		APIKey:         cfg.Provider.APIKey,
		RequestsPerSec: cfg.Provider.RequestsPerSec,
		Proxy:          cfg.Proxy,
	}, logger)

	newsSvc := news.NewService(prov, st, cfg.News.MaxArticles, logger)

	scanner := scan.New(prov, st, newsSvc, metrics.New(prometheus.DefaultRegisterer), logger)
	scanner.WindowDays = cfg.Scan.WindowDays
	scanner.MinHistory = cfg.Scan.MinHistory

	return &app{cfg: cfg, store: st, scanner: scanner, logger: logger}, nil
}

func (a *app) scanParams() scan.Params {
	return scan.Params{
		ScoreThreshold: a.cfg.Scan.ScoreThreshold,
		MinDollarVol:   a.cfg.Scan.MinDollarVol,
		MaxTickers:     a.cfg.Scan.MaxTickers,
	}
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close store")
	}
}
