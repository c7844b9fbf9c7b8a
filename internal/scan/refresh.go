package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"SwingScout/internal/model"
)

// RefreshTracked re-evaluates every watchlist item against fresh market data
// and promotes "On Watch" items that now qualify as strong matches to
// "Triggered". The promotion is one-way; an item that later stops matching
// stays Triggered. Returns the number of items that received a fresh
// snapshot.
func (s *Scanner) RefreshTracked(ctx context.Context, threshold float64) (int, error) {
	s.metrics.RefreshesTotal.Inc()

	log := s.logger.With().Str("run_id", uuid.NewString()).Str("task", "refresh").Logger()

	items, err := s.store.ListWatchlist()
	if err != nil {
		return 0, fmt.Errorf("list watchlist: %w", err)
	}
	log.Info().Int("items", len(items)).Msg("refresh started")

	p := DefaultParams()
	p.ScoreThreshold = threshold

	processed := 0
	for _, item := range items {
		row, err := s.evaluate(ctx, log, item.Symbol, p)
		if err != nil || row == nil {
			continue
		}
		processed++

		if item.Status == model.StatusOnWatch && row.Score.StrongMatch {
			if err := s.store.UpdateWatchlistStatus(item.ID, model.StatusTriggered); err != nil {
				log.Error().Str("symbol", item.Symbol).Err(err).Msg("status update failed")
				continue
			}
			log.Info().Str("symbol", item.Symbol).Str("outcome", "triggered").
				Float64("score", row.Score.Score).Msg("watchlist item promoted")
		}
	}

	log.Info().Int("processed", processed).Msg("refresh finished")
	return processed, nil
}
