// Package indicator provides pure technical-indicator functions over a
// chronologically ordered daily bar series. Functions that need more history
// than the input provides return ErrInsufficientData; callers decide whether
// that is an error or merely an unavailable value.
package indicator

import "errors"

// ErrInsufficientData is returned when a series is too short for the
// requested window.
var ErrInsufficientData = errors.New("not enough data")

// SMA computes the simple moving average of the last `period` values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}
