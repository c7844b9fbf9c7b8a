package model

import "time"

// Candle represents a single daily OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	VWAP   *float64 // volume-weighted price; not all providers supply it
}

// DollarPrice returns the price used for dollar-volume math: VWAP when the
// provider supplied it, otherwise the close.
func (c Candle) DollarPrice() float64 {
	if c.VWAP != nil {
		return *c.VWAP
	}
	return c.Close
}

// Closes projects the close prices of a chronologically ordered bar series.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
