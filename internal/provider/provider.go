// Package provider defines the market-data boundary. Implementations
// validate the provider's loosely-typed wire responses and hand the core
// strictly typed values; nothing downstream reparses provider payloads.
package provider

import (
	"context"
	"errors"
	"time"

	"SwingScout/internal/model"
)

// Sentinel errors implementations map wire-level failures onto.
var (
	ErrNotFound    = errors.New("symbol not found")
	ErrRateLimited = errors.New("provider rate limited")
)

// Article is one raw news headline from the provider, already validated.
type Article struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
}

// DataProvider supplies the symbol universe, reference data, daily bars and
// news headlines.
type DataProvider interface {
	ListUniverse(ctx context.Context, limit int) ([]string, error)
	FetchMetadata(ctx context.Context, symbol string) (model.TickerMeta, error)
	FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.Candle, error)
	FetchNews(ctx context.Context, symbol string, limit int) ([]Article, error)
	Name() string
}
