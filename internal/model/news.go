package model

import "time"

// SentimentLabel classifies recent news tone.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// SentimentTrend compares the 3-day average against the 7-day average.
type SentimentTrend string

const (
	TrendImproving SentimentTrend = "Improving"
	TrendStable    SentimentTrend = "Stable"
	TrendWorsening SentimentTrend = "Worsening"
)

// NewsArticle is one scored headline persisted for a symbol.
type NewsArticle struct {
	Symbol         string
	Title          string
	Source         string
	URL            string
	PublishedAt    time.Time
	SentimentScore float64 // VADER compound, -1..1
	SentimentLabel SentimentLabel
}

// NewsSummary aggregates recent article sentiment for display. It never
// affects scoring.
type NewsSummary struct {
	Label   SentimentLabel `json:"label"`
	Trend   SentimentTrend `json:"trend"`
	Score3d float64        `json:"score3d"`
	Score7d float64        `json:"score7d"`
}
