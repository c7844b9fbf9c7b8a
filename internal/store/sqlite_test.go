package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingScout/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_UpsertTicker(t *testing.T) {
	s := openTestStore(t)

	cap1 := 1e9
	require.NoError(t, s.UpsertTicker(model.TickerMeta{
		Symbol: "ACME", Name: "Acme Corp", MarketCap: &cap1, Sector: "Industrials",
	}))

	ok, err := s.HasTicker("ACME")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasTicker("NOPE")
	require.NoError(t, err)
	assert.False(t, ok)

	// Second upsert must not fail or duplicate.
	require.NoError(t, s.UpsertTicker(model.TickerMeta{Symbol: "ACME", Name: "Acme Corporation"}))
}

func TestSQLiteStore_SnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	sma50 := 101.5
	rvol := 1.8
	snap := model.MetricsSnapshot{
		Symbol: "ACME",
		Date:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Indicators: model.IndicatorSet{
			Close:          105,
			SMA50:          &sma50,
			RVOL:           &rvol,
			AvgDollarVol20: 7_500_000,
			Breakout55:     true,
		},
		Score: model.ScoreResult{
			Score:       82,
			StrongMatch: true,
			Why:         []model.CriteriaHit{{Label: "Breakout", Value: "55-day high cleared"}},
			Notes:       []string{"SMA200 unavailable (not enough history)"},
		},
		News: &model.NewsSummary{
			Label: model.SentimentPositive, Trend: model.TrendImproving,
			Score3d: 0.4, Score7d: 0.2,
		},
	}
	require.NoError(t, s.AppendSnapshot(snap))

	got, err := s.ListSnapshots("ACME", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, snap.Symbol, got[0].Symbol)
	assert.Equal(t, snap.Date, got[0].Date)
	require.NotNil(t, got[0].Indicators.SMA50)
	assert.Equal(t, sma50, *got[0].Indicators.SMA50)
	assert.Nil(t, got[0].Indicators.SMA200)
	assert.True(t, got[0].Indicators.Breakout55)
	assert.False(t, got[0].Indicators.Breakout20)
	assert.Equal(t, snap.Score.Why, got[0].Score.Why)
	assert.Equal(t, snap.Score.Notes, got[0].Score.Notes)
	require.NotNil(t, got[0].News)
	assert.Equal(t, model.SentimentPositive, got[0].News.Label)
}

func TestSQLiteStore_SnapshotsOrderedAndLimited(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendSnapshot(model.MetricsSnapshot{
			Symbol: "ACME",
			Date:   base.AddDate(0, 0, i),
			Score:  model.ScoreResult{Score: float64(i)},
		}))
	}

	got, err := s.ListSnapshots("ACME", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, base.AddDate(0, 0, 4), got[0].Date, "newest first")
	assert.Equal(t, base.AddDate(0, 0, 2), got[2].Date)
}

func TestSQLiteStore_WatchlistIdempotentAdd(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateWatchlistItem("ACME", "looks coiled")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnWatch, first.Status)

	second, err := s.CreateWatchlistItem("ACME", "different notes")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "looks coiled", second.Notes)

	items, err := s.ListWatchlist()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSQLiteStore_WatchlistStatusUpdate(t *testing.T) {
	s := openTestStore(t)

	item, err := s.CreateWatchlistItem("ACME", "")
	require.NoError(t, err)

	require.NoError(t, s.UpdateWatchlistStatus(item.ID, model.StatusTriggered))

	items, err := s.ListWatchlist()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusTriggered, items[0].Status)
}

func TestSQLiteStore_ArticleDedupe(t *testing.T) {
	s := openTestStore(t)

	a := model.NewsArticle{
		Symbol:         "ACME",
		Title:          "Acme beats estimates",
		URL:            "https://example.com/acme-beats",
		PublishedAt:    time.Now().Add(-time.Hour),
		SentimentScore: 0.5,
		SentimentLabel: model.SentimentPositive,
	}
	created, err := s.SaveArticle(a)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.SaveArticle(a)
	require.NoError(t, err)
	assert.False(t, created, "same URL must not insert twice")

	recent, err := s.ListArticlesSince("ACME", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
