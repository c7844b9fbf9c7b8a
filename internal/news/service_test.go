package news

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingScout/internal/model"
	"SwingScout/internal/provider"
	"SwingScout/internal/store"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  model.SentimentLabel
	}{
		{0.5, model.SentimentPositive},
		{0.2, model.SentimentPositive},
		{0.19, model.SentimentNeutral},
		{0, model.SentimentNeutral},
		{-0.19, model.SentimentNeutral},
		{-0.2, model.SentimentNegative},
		{-0.9, model.SentimentNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, labelFor(tt.score), "score %v", tt.score)
	}
}

func TestTrendFor(t *testing.T) {
	assert.Equal(t, model.TrendImproving, trendFor(0.3, 0.1))
	assert.Equal(t, model.TrendWorsening, trendFor(0.0, 0.1))
	assert.Equal(t, model.TrendStable, trendFor(0.15, 0.1))
	assert.Equal(t, model.TrendStable, trendFor(0.1, 0.1))
}

func TestSummarize_NoArticles(t *testing.T) {
	svc := NewService(&provider.MockProvider{}, store.NewMemoryStore(), 50, zerolog.Nop())

	summary, err := svc.Summarize(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Nil(t, summary, "no articles means no summary, not an error")
}

func TestSummarize_IngestsAndDedupes(t *testing.T) {
	now := time.Now()
	mock := &provider.MockProvider{
		Articles: map[string][]provider.Article{
			"ACME": {
				{Title: "Acme reports record profit and strong growth", URL: "https://example.com/1", PublishedAt: now.Add(-24 * time.Hour)},
				{Title: "Acme wins major contract, shares rally", URL: "https://example.com/2", PublishedAt: now.Add(-48 * time.Hour)},
			},
		},
	}
	mem := store.NewMemoryStore()
	svc := NewService(mock, mem, 50, zerolog.Nop())

	summary, err := svc.Summarize(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, summary)

	// Upbeat headlines score positive under VADER.
	assert.Equal(t, model.SentimentPositive, summary.Label)

	// A second pass over the same URLs must not duplicate articles.
	_, err = svc.Summarize(context.Background(), "ACME")
	require.NoError(t, err)
	stored, err := mem.ListArticlesSince("ACME", now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSummarize_TrendFromWindowSplit(t *testing.T) {
	mem := store.NewMemoryStore()
	now := time.Now()

	// Older window clearly negative, fresh window clearly positive.
	articles := []model.NewsArticle{
		{Symbol: "ACME", URL: "u1", PublishedAt: now.Add(-6 * 24 * time.Hour), SentimentScore: -0.6},
		{Symbol: "ACME", URL: "u2", PublishedAt: now.Add(-5 * 24 * time.Hour), SentimentScore: -0.6},
		{Symbol: "ACME", URL: "u3", PublishedAt: now.Add(-24 * time.Hour), SentimentScore: 0.6},
		{Symbol: "ACME", URL: "u4", PublishedAt: now.Add(-12 * time.Hour), SentimentScore: 0.6},
	}
	for _, a := range articles {
		_, err := mem.SaveArticle(a)
		require.NoError(t, err)
	}

	svc := NewService(&provider.MockProvider{}, mem, 50, zerolog.Nop())
	summary, err := svc.Summarize(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, model.SentimentPositive, summary.Label, "3-day average is +0.6")
	assert.Equal(t, model.TrendImproving, summary.Trend)
	assert.InDelta(t, 0.6, summary.Score3d, 1e-9)
	assert.InDelta(t, 0.0, summary.Score7d, 1e-9)
}
