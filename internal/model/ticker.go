package model

import "time"

// TickerMeta holds slow-changing reference data for a symbol.
// MarketCap is nil when the provider does not report it.
type TickerMeta struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	MarketCap *float64 `json:"marketCap"`
	Sector    string   `json:"sector"`
}

// WatchStatus is the lifecycle state of a watchlist item. Transitions are
// one-way: On Watch -> Triggered.
type WatchStatus string

const (
	StatusOnWatch   WatchStatus = "On Watch"
	StatusTriggered WatchStatus = "Triggered"
)

// WatchlistItem is a user-tracked symbol.
type WatchlistItem struct {
	ID      int64       `json:"id"`
	Symbol  string      `json:"symbol"`
	Status  WatchStatus `json:"status"`
	Notes   string      `json:"notes"`
	AddedAt time.Time   `json:"addedAt"`
}
