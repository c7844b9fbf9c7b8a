package model

import "time"

// MatchRow is the per-scan output unit for one strong match.
type MatchRow struct {
	Meta       TickerMeta   `json:"meta"`
	Indicators IndicatorSet `json:"indicators"`
	Score      ScoreResult  `json:"score"`
	News       *NewsSummary `json:"news,omitempty"`
}

// MetricsSnapshot is an immutable point-in-time record of one evaluation,
// keyed by (symbol, timestamp). Rows are never updated or deleted; the
// tracking view reconstructs a symbol's trend from the ordered sequence.
type MetricsSnapshot struct {
	Symbol     string       `json:"symbol"`
	Date       time.Time    `json:"date"`
	Indicators IndicatorSet `json:"indicators"`
	Score      ScoreResult  `json:"score"`
	News       *NewsSummary `json:"news,omitempty"`
}
