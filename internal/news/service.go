// Package news ingests provider headlines, scores them with VADER and
// aggregates recent sentiment per symbol. Summaries are informational only;
// they never feed the scoring engine.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/jonreiter/govader"
	"github.com/rs/zerolog"

	"SwingScout/internal/model"
	"SwingScout/internal/provider"
	"SwingScout/internal/store"
)

// Service fetches, scores and summarizes news for one symbol at a time.
type Service struct {
	provider    provider.DataProvider
	store       store.Store
	analyzer    *govader.SentimentIntensityAnalyzer
	logger      zerolog.Logger
	maxArticles int
}

// NewService creates a news service.
func NewService(p provider.DataProvider, s store.Store, maxArticles int, logger zerolog.Logger) *Service {
	if maxArticles <= 0 {
		maxArticles = 50
	}
	return &Service{
		provider:    p,
		store:       s,
		analyzer:    govader.NewSentimentIntensityAnalyzer(),
		logger:      logger.With().Str("component", "news").Logger(),
		maxArticles: maxArticles,
	}
}

// Summarize ingests fresh headlines for the symbol and returns the 3-day vs
// 7-day sentiment summary, or nil when no recent articles exist.
func (s *Service) Summarize(ctx context.Context, symbol string) (*model.NewsSummary, error) {
	if err := s.ingest(ctx, symbol); err != nil {
		return nil, fmt.Errorf("ingest news for %s: %w", symbol, err)
	}
	return s.summarize(symbol)
}

func (s *Service) ingest(ctx context.Context, symbol string) error {
	articles, err := s.provider.FetchNews(ctx, symbol, s.maxArticles)
	if err != nil {
		return err
	}

	stored := 0
	for _, a := range articles {
		score := s.analyzer.PolarityScores(a.Title).Compound
		created, err := s.store.SaveArticle(model.NewsArticle{
			Symbol:         symbol,
			Title:          a.Title,
			Source:         a.Source,
			URL:            a.URL,
			PublishedAt:    a.PublishedAt,
			SentimentScore: score,
			SentimentLabel: labelFor(score),
		})
		if err != nil {
			return err
		}
		if created {
			stored++
		}
	}
	s.logger.Debug().Str("symbol", symbol).Int("fetched", len(articles)).Int("stored", stored).
		Msg("ingested headlines")
	return nil
}

func (s *Service) summarize(symbol string) (*model.NewsSummary, error) {
	now := time.Now()
	last7, err := s.store.ListArticlesSince(symbol, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	if len(last7) == 0 {
		return nil, nil
	}

	since3 := now.AddDate(0, 0, -3)
	var sum7, sum3 float64
	count3 := 0
	for _, a := range last7 {
		sum7 += a.SentimentScore
		if !a.PublishedAt.Before(since3) {
			sum3 += a.SentimentScore
			count3++
		}
	}

	score7 := sum7 / float64(len(last7))
	score3 := score7
	if count3 > 0 {
		score3 = sum3 / float64(count3)
	}

	summary := &model.NewsSummary{
		Label:   labelFor(score3),
		Trend:   trendFor(score3, score7),
		Score3d: score3,
		Score7d: score7,
	}
	return summary, nil
}

// labelFor classifies a compound score: >= 0.2 positive, <= -0.2 negative.
func labelFor(score float64) model.SentimentLabel {
	switch {
	case score >= 0.2:
		return model.SentimentPositive
	case score <= -0.2:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// trendFor compares the 3-day average against the 7-day average.
func trendFor(score3, score7 float64) model.SentimentTrend {
	diff := score3 - score7
	switch {
	case diff > 0.08:
		return model.TrendImproving
	case diff < -0.08:
		return model.TrendWorsening
	default:
		return model.TrendStable
	}
}
