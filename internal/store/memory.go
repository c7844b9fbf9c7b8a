package store

import (
	"sort"
	"sync"
	"time"

	"SwingScout/internal/model"
)

// MemoryStore is an in-memory Store used in tests and when no database path
// is configured.
type MemoryStore struct {
	mu        sync.Mutex
	tickers   map[string]model.TickerMeta
	snapshots []model.MetricsSnapshot
	watchlist []model.WatchlistItem
	articles  map[string]model.NewsArticle // keyed by URL
	nextID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickers:  make(map[string]model.TickerMeta),
		articles: make(map[string]model.NewsArticle),
		nextID:   1,
	}
}

func (m *MemoryStore) UpsertTicker(meta model.TickerMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickers[meta.Symbol] = meta
	return nil
}

func (m *MemoryStore) HasTicker(symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tickers[symbol]
	return ok, nil
}

func (m *MemoryStore) AppendSnapshot(snap model.MetricsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, snap)
	return nil
}

func (m *MemoryStore) ListSnapshots(symbol string, limit int) ([]model.MetricsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.MetricsSnapshot
	for _, s := range m.snapshots {
		if s.Symbol == symbol {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListWatchlist() ([]model.WatchlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WatchlistItem, len(m.watchlist))
	copy(out, m.watchlist)
	return out, nil
}

func (m *MemoryStore) CreateWatchlistItem(symbol, notes string) (model.WatchlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.watchlist {
		if item.Symbol == symbol {
			return item, nil
		}
	}
	item := model.WatchlistItem{
		ID:      m.nextID,
		Symbol:  symbol,
		Status:  model.StatusOnWatch,
		Notes:   notes,
		AddedAt: time.Now().UTC(),
	}
	m.nextID++
	m.watchlist = append(m.watchlist, item)
	return item, nil
}

func (m *MemoryStore) UpdateWatchlistStatus(id int64, status model.WatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.watchlist {
		if m.watchlist[i].ID == id {
			m.watchlist[i].Status = status
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) SaveArticle(a model.NewsArticle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.articles[a.URL]; exists {
		return false, nil
	}
	m.articles[a.URL] = a
	return true, nil
}

func (m *MemoryStore) ListArticlesSince(symbol string, since time.Time) ([]model.NewsArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.NewsArticle
	for _, a := range m.articles {
		if a.Symbol == symbol && !a.PublishedAt.Before(since) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
