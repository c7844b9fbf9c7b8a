package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"SwingScout/internal/httpx"
	"SwingScout/internal/model"
)

// PolygonProvider implements DataProvider against the Polygon.io REST API.
type PolygonProvider struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
	logger  zerolog.Logger
}

// PolygonOptions configures a PolygonProvider.
type PolygonOptions struct {
	BaseURL        string
	APIKey         string
	RequestsPerSec int
	Proxy          string
}

// NewPolygonProvider creates a Polygon client. All requests share one rate
// limiter sized to the account's request ceiling.
func NewPolygonProvider(opts PolygonOptions, logger zerolog.Logger) *PolygonProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.polygon.io"
	}
	return &PolygonProvider{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		client: httpx.NewClient(httpx.Options{
			RequestsPerSec: opts.RequestsPerSec,
			ProxyURL:       opts.Proxy,
		}),
		logger: logger.With().Str("component", "polygon").Logger(),
	}
}

func (p *PolygonProvider) Name() string { return "polygon" }

func (p *PolygonProvider) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u, err := url.Parse(p.baseURL + path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", p.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusNotFound:
				return ErrNotFound
			case http.StatusTooManyRequests:
				return ErrRateLimited
			}
		}
		return fmt.Errorf("polygon %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("polygon read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("polygon decode %s: %w", path, err)
	}
	return nil
}

type tickersResponse struct {
	Results []struct {
		Ticker string `json:"ticker"`
	} `json:"results"`
}

func (p *PolygonProvider) ListUniverse(ctx context.Context, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("market", "stocks")
	params.Set("active", "true")
	params.Set("limit", fmt.Sprint(limit))

	var resp tickersResponse
	if err := p.getJSON(ctx, "/v3/reference/tickers", params, &resp); err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Ticker != "" {
			symbols = append(symbols, r.Ticker)
		}
	}
	p.logger.Debug().Int("count", len(symbols)).Msg("listed universe")
	return symbols, nil
}

type overviewResponse struct {
	Results struct {
		Name           string   `json:"name"`
		MarketCap      *float64 `json:"market_cap"`
		SicDescription string   `json:"sic_description"`
	} `json:"results"`
}

func (p *PolygonProvider) FetchMetadata(ctx context.Context, symbol string) (model.TickerMeta, error) {
	var resp overviewResponse
	path := "/v3/reference/tickers/" + url.PathEscape(symbol)
	if err := p.getJSON(ctx, path, nil, &resp); err != nil {
		return model.TickerMeta{}, err
	}
	return model.TickerMeta{
		Symbol:    symbol,
		Name:      resp.Results.Name,
		MarketCap: resp.Results.MarketCap,
		Sector:    resp.Results.SicDescription,
	}, nil
}

type aggsResponse struct {
	Results []struct {
		T  int64    `json:"t"` // ms epoch
		O  float64  `json:"o"`
		H  float64  `json:"h"`
		L  float64  `json:"l"`
		C  float64  `json:"c"`
		V  float64  `json:"v"`
		VW *float64 `json:"vw"`
	} `json:"results"`
}

func (p *PolygonProvider) FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]model.Candle, error) {
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		url.PathEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"))
	params := url.Values{}
	params.Set("adjusted", "true")
	params.Set("sort", "asc")
	params.Set("limit", "50000")

	var resp aggsResponse
	if err := p.getJSON(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	bars := make([]model.Candle, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.O == 0 && r.H == 0 && r.L == 0 && r.C == 0 {
			continue // null bar (halt, holiday backfill)
		}
		bars = append(bars, model.Candle{
			Time:   time.UnixMilli(r.T).UTC(),
			Open:   r.O,
			High:   r.H,
			Low:    r.L,
			Close:  r.C,
			Volume: r.V,
			VWAP:   r.VW,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

type newsResponse struct {
	Results []struct {
		Title      string `json:"title"`
		ArticleURL string `json:"article_url"`
		Publisher  struct {
			Name string `json:"name"`
		} `json:"publisher"`
		PublishedUTC string `json:"published_utc"`
	} `json:"results"`
}

func (p *PolygonProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("ticker", symbol)
	params.Set("limit", fmt.Sprint(limit))

	var resp newsResponse
	if err := p.getJSON(ctx, "/v2/reference/news", params, &resp); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.ArticleURL == "" {
			continue
		}
		published := time.Now().UTC()
		if t, err := time.Parse(time.RFC3339, r.PublishedUTC); err == nil {
			published = t
		}
		articles = append(articles, Article{
			Title:       r.Title,
			URL:         r.ArticleURL,
			Source:      r.Publisher.Name,
			PublishedAt: published,
		})
	}
	return articles, nil
}
