package provider

import (
	"context"
	"time"

	"SwingScout/internal/model"
)

// MockProvider returns scripted data for development and testing. Per-symbol
// error entries simulate fetch failures.
type MockProvider struct {
	Universe []string
	Meta     map[string]model.TickerMeta
	Bars     map[string][]model.Candle
	Articles map[string][]Article

	MetaErr map[string]error
	BarsErr map[string]error
	NewsErr map[string]error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) ListUniverse(_ context.Context, limit int) ([]string, error) {
	if limit > len(m.Universe) {
		limit = len(m.Universe)
	}
	return m.Universe[:limit], nil
}

func (m *MockProvider) FetchMetadata(_ context.Context, symbol string) (model.TickerMeta, error) {
	if err := m.MetaErr[symbol]; err != nil {
		return model.TickerMeta{}, err
	}
	if meta, ok := m.Meta[symbol]; ok {
		return meta, nil
	}
	return model.TickerMeta{}, ErrNotFound
}

func (m *MockProvider) FetchDailyBars(_ context.Context, symbol string, _, _ time.Time) ([]model.Candle, error) {
	if err := m.BarsErr[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return nil, ErrNotFound
}

func (m *MockProvider) FetchNews(_ context.Context, symbol string, limit int) ([]Article, error) {
	if err := m.NewsErr[symbol]; err != nil {
		return nil, err
	}
	articles := m.Articles[symbol]
	if limit < len(articles) {
		articles = articles[:limit]
	}
	return articles, nil
}
