package model

// IndicatorSet is the derived snapshot of one symbol's bar series.
// Pointer fields are nil when the history is too short to compute the
// indicator; they are never filled with a fabricated zero.
type IndicatorSet struct {
	Close          float64  `json:"close"`
	SMA50          *float64 `json:"sma50"`
	SMA200         *float64 `json:"sma200"`
	RSI14          *float64 `json:"rsi14"`
	ATRPct         *float64 `json:"atrPct"`
	BBWidth        *float64 `json:"bbWidth"`
	RVOL           *float64 `json:"rvol"`
	AvgDollarVol20 float64  `json:"avgDollarVol20"`
	Breakout20     bool     `json:"breakout20"`
	Breakout55     bool     `json:"breakout55"`
}
