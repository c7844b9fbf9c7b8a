package indicator

import (
	"errors"
	"math"

	"SwingScout/internal/model"
)

// ATRPct computes the average true range over the trailing `period` bars,
// normalized by the latest close. Requires period+1 bars (true range needs
// the previous close) and a positive latest close.
func ATRPct(candles []model.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(candles) < period+1 {
		return 0, ErrInsufficientData
	}

	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		cur := candles[i]
		prevClose := candles[i-1].Close
		tr := math.Max(cur.High-cur.Low,
			math.Max(math.Abs(cur.High-prevClose), math.Abs(cur.Low-prevClose)))
		sum += tr
	}

	lastClose := candles[len(candles)-1].Close
	if lastClose <= 0 {
		return 0, errors.New("non-positive close")
	}
	atr := sum / float64(period)
	return atr / lastClose, nil
}

// BollingerWidth computes (upper-lower)/mean for bands at mean ± k population
// standard deviations over the trailing `period` values.
func BollingerWidth(values []float64, period int, k float64) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrInsufficientData
	}

	window := values[len(values)-period:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(period)
	if mean == 0 {
		return 0, errors.New("zero mean")
	}

	variance := 0.0
	for _, v := range window {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(period)
	stdev := math.Sqrt(variance)

	upper := mean + k*stdev
	lower := mean - k*stdev
	return (upper - lower) / mean, nil
}
