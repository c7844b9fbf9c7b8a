package indicator

import "SwingScout/internal/model"

// Standard windows for the swing setup snapshot.
const (
	SMAShortPeriod  = 50
	SMALongPeriod   = 200
	RSIPeriod       = 14
	ATRPeriod       = 14
	BollingerPeriod = 20
	BollingerK      = 2.0
	VolumeLookback  = 20
	BreakoutShort   = 20
	BreakoutLong    = 55
)

// Snapshot computes the full IndicatorSet for a chronologically ordered
// daily bar series. Indicators the history cannot support are left nil.
func Snapshot(candles []model.Candle) model.IndicatorSet {
	closes := model.Closes(candles)

	set := model.IndicatorSet{
		AvgDollarVol20: AvgDollarVolume(candles, VolumeLookback),
		Breakout20:     BreakoutHigh(candles, BreakoutShort),
		Breakout55:     BreakoutHigh(candles, BreakoutLong),
	}
	if len(closes) > 0 {
		set.Close = closes[len(closes)-1]
	}

	if v, err := SMA(closes, SMAShortPeriod); err == nil {
		set.SMA50 = &v
	}
	if v, err := SMA(closes, SMALongPeriod); err == nil {
		set.SMA200 = &v
	}
	if v, err := RSI(closes, RSIPeriod); err == nil {
		set.RSI14 = &v
	}
	if v, err := ATRPct(candles, ATRPeriod); err == nil {
		set.ATRPct = &v
	}
	if v, err := BollingerWidth(closes, BollingerPeriod, BollingerK); err == nil {
		set.BBWidth = &v
	}
	if v, err := RVOL(candles, VolumeLookback); err == nil {
		set.RVOL = &v
	}

	return set
}
