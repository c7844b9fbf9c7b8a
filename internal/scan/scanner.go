// Package scan drives the screening pipeline over a bounded symbol universe:
// fetch, compute indicators, score, enrich with news, persist, rank. Work is
// strictly sequential per symbol; the upstream provider enforces a request
// ceiling that fan-out would violate.
package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"SwingScout/internal/indicator"
	"SwingScout/internal/metrics"
	"SwingScout/internal/model"
	"SwingScout/internal/provider"
	"SwingScout/internal/scoring"
	"SwingScout/internal/store"
)

// Summarizer is the optional news collaborator. Failures yield an absent
// summary, never a failed evaluation.
type Summarizer interface {
	Summarize(ctx context.Context, symbol string) (*model.NewsSummary, error)
}

// Params are the caller-supplied knobs of one scan run. MaxTickers is an
// explicit throttle against provider rate limits, not an architectural
// constant.
type Params struct {
	ScoreThreshold float64
	MinDollarVol   float64
	MaxTickers     int
}

// DefaultParams mirrors the scan endpoint defaults.
func DefaultParams() Params {
	return Params{ScoreThreshold: 75, MinDollarVol: 5_000_000, MaxTickers: 200}
}

// Scanner orchestrates scan and refresh runs.
type Scanner struct {
	provider provider.DataProvider
	store    store.Store
	news     Summarizer // nil disables enrichment
	metrics  *metrics.Metrics
	logger   zerolog.Logger

	// WindowDays is the calendar span of the daily-bar fetch; MinHistory is
	// the bar count below which a symbol is skipped.
	WindowDays int
	MinHistory int
}

// New creates a Scanner with the standard 260-day window and 60-bar floor.
func New(p provider.DataProvider, st store.Store, news Summarizer, m *metrics.Metrics, logger zerolog.Logger) *Scanner {
	return &Scanner{
		provider:   p,
		store:      st,
		news:       news,
		metrics:    m,
		logger:     logger.With().Str("component", "scan").Logger(),
		WindowDays: 260,
		MinHistory: 60,
	}
}

// Run screens up to p.MaxTickers symbols and returns the strong matches,
// sorted by descending score with symbol as the deterministic tiebreak.
// Per-symbol failures are skipped, never fatal to the run.
func (s *Scanner) Run(ctx context.Context, p Params) ([]model.MatchRow, error) {
	s.metrics.ScansTotal.Inc()
	timer := prometheus.NewTimer(s.metrics.ScanDuration)
	defer timer.ObserveDuration()

	log := s.logger.With().Str("run_id", uuid.NewString()).Logger()

	symbols, err := s.provider.ListUniverse(ctx, p.MaxTickers)
	if err != nil {
		return nil, fmt.Errorf("list universe: %w", err)
	}
	log.Info().Int("symbols", len(symbols)).Float64("threshold", p.ScoreThreshold).Msg("scan started")

	var matches []model.MatchRow
	for _, symbol := range symbols {
		row, err := s.evaluate(ctx, log, symbol, p)
		if err != nil || row == nil {
			continue
		}
		if row.Score.StrongMatch {
			matches = append(matches, *row)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score.Score != matches[j].Score.Score {
			return matches[i].Score.Score > matches[j].Score.Score
		}
		return matches[i].Meta.Symbol < matches[j].Meta.Symbol
	})

	log.Info().Int("matches", len(matches)).Msg("scan finished")
	return matches, nil
}

// evaluate runs the per-symbol pipeline: fetch, snapshot, score, enrich,
// persist. A nil row with nil error means the symbol was skipped silently
// (short history); an error means the symbol was skipped on failure.
func (s *Scanner) evaluate(ctx context.Context, log zerolog.Logger, symbol string, p Params) (*model.MatchRow, error) {
	meta, err := s.provider.FetchMetadata(ctx, symbol)
	if err != nil {
		s.metrics.SymbolsSkipped.WithLabelValues("metadata").Inc()
		log.Warn().Str("symbol", symbol).Str("stage", "metadata").Str("outcome", "skipped").
			Err(err).Msg("fetch failed")
		return nil, err
	}

	to := time.Now().AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -s.WindowDays)
	bars, err := s.provider.FetchDailyBars(ctx, symbol, from, to)
	if err != nil {
		s.metrics.SymbolsSkipped.WithLabelValues("bars").Inc()
		log.Warn().Str("symbol", symbol).Str("stage", "bars").Str("outcome", "skipped").
			Err(err).Msg("fetch failed")
		return nil, err
	}
	if len(bars) < s.MinHistory {
		s.metrics.SymbolsSkipped.WithLabelValues("short_history").Inc()
		log.Debug().Str("symbol", symbol).Str("stage", "bars").Str("outcome", "short_history").
			Int("bars", len(bars)).Msg("skipped")
		return nil, nil
	}

	set := indicator.Snapshot(bars)
	result := scoring.Score(meta, set, scoring.Params{
		Threshold:    p.ScoreThreshold,
		MinDollarVol: p.MinDollarVol,
	})
	s.metrics.SymbolsEvaluated.Inc()

	row := &model.MatchRow{Meta: meta, Indicators: set, Score: result}

	if result.StrongMatch {
		s.metrics.StrongMatches.Inc()
		if s.news != nil {
			summary, err := s.news.Summarize(ctx, symbol)
			if err != nil {
				// News is informational only: an absent summary, never a
				// failed evaluation.
				log.Warn().Str("symbol", symbol).Str("stage", "news").Err(err).Msg("enrichment failed")
			} else {
				row.News = summary
			}
		}
	}

	if err := s.store.UpsertTicker(meta); err != nil {
		log.Error().Str("symbol", symbol).Str("stage", "persist").Err(err).Msg("upsert ticker failed")
	}
	if err := s.store.AppendSnapshot(model.MetricsSnapshot{
		Symbol:     symbol,
		Date:       time.Now().UTC(),
		Indicators: set,
		Score:      result,
		News:       row.News,
	}); err != nil {
		log.Error().Str("symbol", symbol).Str("stage", "persist").Err(err).Msg("append snapshot failed")
	}

	log.Info().Str("symbol", symbol).Str("stage", "score").Str("outcome", outcome(result)).
		Float64("score", result.Score).Msg("evaluated")
	return row, nil
}

func outcome(r model.ScoreResult) string {
	if r.StrongMatch {
		return "strong_match"
	}
	return "evaluated"
}
