package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingScout/internal/metrics"
	"SwingScout/internal/model"
	"SwingScout/internal/provider"
	"SwingScout/internal/scan"
	"SwingScout/internal/store"
)

func newTestServer(t *testing.T, p provider.DataProvider, st store.Store) *Server {
	t.Helper()
	sc := scan.New(p, st, nil, metrics.New(prometheus.NewRegistry()), zerolog.Nop())
	return NewServer(sc, st, scan.DefaultParams(), zerolog.Nop())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &provider.MockProvider{}, store.NewMemoryStore())
	w := doRequest(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddWatchlist_UnknownSymbolRejected(t *testing.T) {
	s := newTestServer(t, &provider.MockProvider{}, store.NewMemoryStore())

	w := doRequest(s, http.MethodPost, "/api/watchlist", `{"symbol":"NOPE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown symbol")
}

func TestAddWatchlist_KnownSymbol(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.UpsertTicker(model.TickerMeta{Symbol: "ACME"}))
	s := newTestServer(t, &provider.MockProvider{}, mem)

	w := doRequest(s, http.MethodPost, "/api/watchlist", `{"symbol":"ACME","notes":"tight base"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"On Watch"`)

	// Re-adding must not create a duplicate.
	w = doRequest(s, http.MethodPost, "/api/watchlist", `{"symbol":"ACME"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	items, err := mem.ListWatchlist()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetWatchlist_SymbolReturnsSnapshots(t *testing.T) {
	mem := store.NewMemoryStore()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 35; i++ {
		require.NoError(t, mem.AppendSnapshot(model.MetricsSnapshot{
			Symbol: "ACME",
			Date:   base.AddDate(0, 0, i),
			Score:  model.ScoreResult{Score: float64(i)},
		}))
	}
	s := newTestServer(t, &provider.MockProvider{}, mem)

	w := doRequest(s, http.MethodGet, "/api/watchlist?symbol=ACME", "")
	require.Equal(t, http.StatusOK, w.Code)

	// The tracking view is capped at 30 rows.
	assert.Equal(t, 30, strings.Count(w.Body.String(), `"symbol":"ACME"`))
}

func TestScan_EmptyUniverse(t *testing.T) {
	s := newTestServer(t, &provider.MockProvider{}, store.NewMemoryStore())

	w := doRequest(s, http.MethodPost, "/api/scan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestRefresh_ReportsProcessed(t *testing.T) {
	s := newTestServer(t, &provider.MockProvider{}, store.NewMemoryStore())

	w := doRequest(s, http.MethodPost, "/api/refresh-tracked", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processed":0`)
}
