package indicator

import "SwingScout/internal/model"

// AvgDollarVolume computes the mean of volume x price over the last
// `lookback` bars, using fewer bars when the history is shorter. An empty
// series yields 0 rather than an error: this feeds a liquidity floor, not a
// readiness gate.
func AvgDollarVolume(candles []model.Candle, lookback int) float64 {
	if len(candles) == 0 || lookback <= 0 {
		return 0
	}
	start := len(candles) - lookback
	if start < 0 {
		start = 0
	}
	window := candles[start:]
	sum := 0.0
	for _, c := range window {
		sum += c.Volume * c.DollarPrice()
	}
	return sum / float64(len(window))
}

// RVOL computes the latest bar's volume relative to the mean volume of the
// preceding `lookback` bars, the latest bar excluded.
func RVOL(candles []model.Candle, lookback int) (float64, error) {
	if lookback <= 0 || len(candles) < lookback+1 {
		return 0, ErrInsufficientData
	}
	prior := candles[len(candles)-lookback-1 : len(candles)-1]
	avg := 0.0
	for _, c := range prior {
		avg += c.Volume
	}
	avg /= float64(len(prior))
	if avg <= 0 {
		return 0, ErrInsufficientData
	}
	return candles[len(candles)-1].Volume / avg, nil
}

// BreakoutHigh reports whether the latest close exceeds the maximum high of
// the preceding `lookback` bars (today excluded). A series too short to tell
// is simply not a breakout.
func BreakoutHigh(candles []model.Candle, lookback int) bool {
	if lookback <= 0 || len(candles) < lookback+1 {
		return false
	}
	lastClose := candles[len(candles)-1].Close
	prior := candles[len(candles)-lookback-1 : len(candles)-1]
	priorHigh := prior[0].High
	for _, c := range prior[1:] {
		if c.High > priorHigh {
			priorHigh = c.High
		}
	}
	return lastClose > priorHigh
}
