package store

import (
	"time"

	"SwingScout/internal/model"
)

// Store persists tickers, evaluation snapshots, the watchlist and scored
// news articles. Snapshots are append-only: once written they are never
// updated or deleted.
type Store interface {
	UpsertTicker(meta model.TickerMeta) error
	HasTicker(symbol string) (bool, error)

	AppendSnapshot(snap model.MetricsSnapshot) error
	ListSnapshots(symbol string, limit int) ([]model.MetricsSnapshot, error)

	ListWatchlist() ([]model.WatchlistItem, error)
	// CreateWatchlistItem is idempotent: adding a symbol twice returns the
	// existing item unchanged.
	CreateWatchlistItem(symbol, notes string) (model.WatchlistItem, error)
	UpdateWatchlistStatus(id int64, status model.WatchStatus) error

	// SaveArticle reports false when the URL was already stored.
	SaveArticle(a model.NewsArticle) (bool, error)
	ListArticlesSince(symbol string, since time.Time) ([]model.NewsArticle, error)

	Close() error
}
