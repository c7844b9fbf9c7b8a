// Package api exposes the screener over HTTP: scan and refresh triggers,
// watchlist management and the tracking view.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"SwingScout/internal/model"
	"SwingScout/internal/scan"
	"SwingScout/internal/store"
)

// trackingDepth is how many recent snapshots the watchlist detail view
// returns per symbol.
const trackingDepth = 30

// Server wires the HTTP layer to the scanner and store.
type Server struct {
	scanner  *scan.Scanner
	store    store.Store
	defaults scan.Params
	logger   zerolog.Logger

	// scanMu serializes scan and refresh runs. Concurrent runs would double
	// provider traffic and interleave watchlist updates.
	scanMu sync.Mutex
}

// NewServer creates a Server with the given default scan parameters.
func NewServer(sc *scan.Scanner, st store.Store, defaults scan.Params, logger zerolog.Logger) *Server {
	return &Server{
		scanner:  sc,
		store:    st,
		defaults: defaults,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/scan", s.handleScan)
		apiGroup.POST("/refresh-tracked", s.handleRefresh)
		apiGroup.GET("/watchlist", s.handleGetWatchlist)
		apiGroup.POST("/watchlist", s.handleAddWatchlist)
	}
	return r
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("http server listening")
	return s.Router().Run(addr)
}

type scanRequest struct {
	ScoreThreshold *float64 `json:"score_threshold"`
	MinDollarVol   *float64 `json:"min_dollar_vol"`
	MaxTickers     *int     `json:"max_tickers"`
}

func (s *Server) handleScan(c *gin.Context) {
	var req scanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	p := s.defaults
	if req.ScoreThreshold != nil {
		p.ScoreThreshold = *req.ScoreThreshold
	}
	if req.MinDollarVol != nil {
		p.MinDollarVol = *req.MinDollarVol
	}
	if req.MaxTickers != nil {
		p.MaxTickers = *req.MaxTickers
	}

	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	matches, err := s.scanner.Run(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error().Err(err).Msg("scan failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if matches == nil {
		matches = []model.MatchRow{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	processed, err := s.scanner.RefreshTracked(c.Request.Context(), s.defaults.ScoreThreshold)
	if err != nil {
		s.logger.Error().Err(err).Msg("refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

func (s *Server) handleGetWatchlist(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		items, err := s.store.ListWatchlist()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if items == nil {
			items = []model.WatchlistItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
		return
	}

	snapshots, err := s.store.ListSnapshots(symbol, trackingDepth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snapshots == nil {
		snapshots = []model.MetricsSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "snapshots": snapshots})
}

type addWatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Notes  string `json:"notes"`
}

func (s *Server) handleAddWatchlist(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only symbols a scan has already seen can be tracked; an unknown symbol
	// usually means a typo.
	known, err := s.store.HasTicker(req.Symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown symbol: scan it first"})
		return
	}

	item, err := s.store.CreateWatchlistItem(req.Symbol, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}
