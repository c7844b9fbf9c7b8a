package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"SwingScout/internal/model"
)

// SQLiteStore persists screener data to a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.logger.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tickers (
			symbol     TEXT PRIMARY KEY,
			name       TEXT,
			market_cap REAL,
			sector     TEXT,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol         TEXT NOT NULL,
			date           INTEGER NOT NULL,
			close          REAL,
			sma50          REAL,
			sma200         REAL,
			rsi14          REAL,
			atr_pct        REAL,
			bb_width       REAL,
			rvol           REAL,
			avg_dollar_vol REAL,
			breakout20     INTEGER,
			breakout55     INTEGER,
			score          REAL,
			strong_match   INTEGER,
			why_json       TEXT,
			notes_json     TEXT,
			news_label     TEXT,
			news_trend     TEXT,
			news_score3d   REAL,
			news_score7d   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_date ON snapshots(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS watchlist (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol   TEXT NOT NULL UNIQUE,
			status   TEXT NOT NULL,
			notes    TEXT,
			added_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS news_articles (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol          TEXT NOT NULL,
			title           TEXT,
			source          TEXT,
			url             TEXT NOT NULL UNIQUE,
			published_at    INTEGER NOT NULL,
			sentiment_score REAL,
			sentiment_label TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_symbol_published ON news_articles(symbol, published_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) UpsertTicker(meta model.TickerMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO tickers (symbol, name, market_cap, sector, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET
			name=excluded.name, market_cap=excluded.market_cap,
			sector=excluded.sector, updated_at=excluded.updated_at`,
		meta.Symbol, meta.Name, nullable(meta.MarketCap), meta.Sector, time.Now().Unix(),
	)
	return err
}

func (s *SQLiteStore) HasTicker(symbol string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM tickers WHERE symbol = ?`, symbol).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) AppendSnapshot(snap model.MetricsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	whyJSON, err := json.Marshal(snap.Score.Why)
	if err != nil {
		return fmt.Errorf("marshal why: %w", err)
	}
	notesJSON, err := json.Marshal(snap.Score.Notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	var newsLabel, newsTrend any
	var newsScore3d, newsScore7d any
	if snap.News != nil {
		newsLabel = string(snap.News.Label)
		newsTrend = string(snap.News.Trend)
		newsScore3d = snap.News.Score3d
		newsScore7d = snap.News.Score7d
	}

	ind := snap.Indicators
	_, err = s.db.Exec(`INSERT INTO snapshots
		(symbol, date, close, sma50, sma200, rsi14, atr_pct, bb_width, rvol,
		 avg_dollar_vol, breakout20, breakout55, score, strong_match,
		 why_json, notes_json, news_label, news_trend, news_score3d, news_score7d)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.Symbol, snap.Date.Unix(), ind.Close,
		nullable(ind.SMA50), nullable(ind.SMA200), nullable(ind.RSI14),
		nullable(ind.ATRPct), nullable(ind.BBWidth), nullable(ind.RVOL),
		ind.AvgDollarVol20, boolInt(ind.Breakout20), boolInt(ind.Breakout55),
		snap.Score.Score, boolInt(snap.Score.StrongMatch),
		string(whyJSON), string(notesJSON),
		newsLabel, newsTrend, newsScore3d, newsScore7d,
	)
	return err
}

func (s *SQLiteStore) ListSnapshots(symbol string, limit int) ([]model.MetricsSnapshot, error) {
	rows, err := s.db.Query(`SELECT symbol, date, close, sma50, sma200, rsi14,
		atr_pct, bb_width, rvol, avg_dollar_vol, breakout20, breakout55,
		score, strong_match, why_json, notes_json,
		news_label, news_trend, news_score3d, news_score7d
		FROM snapshots WHERE symbol = ? ORDER BY date DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []model.MetricsSnapshot
	for rows.Next() {
		var (
			snap                                  model.MetricsSnapshot
			date                                  int64
			sma50, sma200, rsi14, atrPct, bbW, rv sql.NullFloat64
			breakout20, breakout55, strong        int
			whyJSON, notesJSON                    string
			newsLabel, newsTrend                  sql.NullString
			newsScore3d, newsScore7d              sql.NullFloat64
		)
		if err := rows.Scan(&snap.Symbol, &date, &snap.Indicators.Close,
			&sma50, &sma200, &rsi14, &atrPct, &bbW, &rv,
			&snap.Indicators.AvgDollarVol20, &breakout20, &breakout55,
			&snap.Score.Score, &strong, &whyJSON, &notesJSON,
			&newsLabel, &newsTrend, &newsScore3d, &newsScore7d,
		); err != nil {
			return nil, err
		}

		snap.Date = time.Unix(date, 0).UTC()
		snap.Indicators.SMA50 = fromNull(sma50)
		snap.Indicators.SMA200 = fromNull(sma200)
		snap.Indicators.RSI14 = fromNull(rsi14)
		snap.Indicators.ATRPct = fromNull(atrPct)
		snap.Indicators.BBWidth = fromNull(bbW)
		snap.Indicators.RVOL = fromNull(rv)
		snap.Indicators.Breakout20 = breakout20 != 0
		snap.Indicators.Breakout55 = breakout55 != 0
		snap.Score.StrongMatch = strong != 0

		if err := json.Unmarshal([]byte(whyJSON), &snap.Score.Why); err != nil {
			return nil, fmt.Errorf("decode why: %w", err)
		}
		if err := json.Unmarshal([]byte(notesJSON), &snap.Score.Notes); err != nil {
			return nil, fmt.Errorf("decode notes: %w", err)
		}

		if newsLabel.Valid {
			snap.News = &model.NewsSummary{
				Label:   model.SentimentLabel(newsLabel.String),
				Trend:   model.SentimentTrend(newsTrend.String),
				Score3d: newsScore3d.Float64,
				Score7d: newsScore7d.Float64,
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SQLiteStore) ListWatchlist() ([]model.WatchlistItem, error) {
	rows, err := s.db.Query(`SELECT id, symbol, status, notes, added_at
		FROM watchlist ORDER BY added_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WatchlistItem
	for rows.Next() {
		var item model.WatchlistItem
		var status string
		var addedAt int64
		if err := rows.Scan(&item.ID, &item.Symbol, &status, &item.Notes, &addedAt); err != nil {
			return nil, err
		}
		item.Status = model.WatchStatus(status)
		item.AddedAt = time.Unix(addedAt, 0).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) CreateWatchlistItem(symbol, notes string) (model.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing model.WatchlistItem
	var status string
	var addedAt int64
	err := s.db.QueryRow(`SELECT id, symbol, status, notes, added_at
		FROM watchlist WHERE symbol = ?`, symbol).
		Scan(&existing.ID, &existing.Symbol, &status, &existing.Notes, &addedAt)
	if err == nil {
		existing.Status = model.WatchStatus(status)
		existing.AddedAt = time.Unix(addedAt, 0).UTC()
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return model.WatchlistItem{}, err
	}

	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO watchlist (symbol, status, notes, added_at)
		VALUES (?,?,?,?)`,
		symbol, string(model.StatusOnWatch), notes, now.Unix())
	if err != nil {
		return model.WatchlistItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WatchlistItem{}, err
	}
	return model.WatchlistItem{
		ID:      id,
		Symbol:  symbol,
		Status:  model.StatusOnWatch,
		Notes:   notes,
		AddedAt: now.UTC(),
	}, nil
}

func (s *SQLiteStore) UpdateWatchlistStatus(id int64, status model.WatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE watchlist SET status = ? WHERE id = ?`, string(status), id)
	return err
}

func (s *SQLiteStore) SaveArticle(a model.NewsArticle) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`INSERT OR IGNORE INTO news_articles
		(symbol, title, source, url, published_at, sentiment_score, sentiment_label)
		VALUES (?,?,?,?,?,?,?)`,
		a.Symbol, a.Title, a.Source, a.URL, a.PublishedAt.Unix(),
		a.SentimentScore, string(a.SentimentLabel),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListArticlesSince(symbol string, since time.Time) ([]model.NewsArticle, error) {
	rows, err := s.db.Query(`SELECT symbol, title, source, url, published_at,
		sentiment_score, sentiment_label
		FROM news_articles WHERE symbol = ? AND published_at >= ?
		ORDER BY published_at DESC`, symbol, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.NewsArticle
	for rows.Next() {
		var a model.NewsArticle
		var publishedAt int64
		var label string
		if err := rows.Scan(&a.Symbol, &a.Title, &a.Source, &a.URL,
			&publishedAt, &a.SentimentScore, &label); err != nil {
			return nil, err
		}
		a.PublishedAt = time.Unix(publishedAt, 0).UTC()
		a.SentimentLabel = model.SentimentLabel(label)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.logger.Info().Msg("closing sqlite store")
	return s.db.Close()
}

func nullable(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func fromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
