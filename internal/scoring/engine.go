// Package scoring turns static metadata and an indicator snapshot into a
// bounded upside-swing score, a strong-match decision and a human-readable
// explanation. It is pure: all inputs arrive typed, nothing is fetched.
package scoring

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"SwingScout/internal/model"
)

// Params are the caller-tunable knobs of one scoring pass.
type Params struct {
	Threshold    float64 // strong-match score floor
	MinDollarVol float64 // liquidity gate, $/day
}

// DefaultParams mirrors the scan endpoint defaults.
func DefaultParams() Params {
	return Params{Threshold: 75, MinDollarVol: 5_000_000}
}

// marketCapFloor gates out small caps whenever the cap is known.
const marketCapFloor = 500_000_000

// Factor caps.
const (
	trendCap       = 20.0
	compressionCap = 20.0
	breakoutCap    = 25.0
	volumeCap      = 25.0
	momentumCap    = 10.0
	liquidityCap   = 10.0
)

// Score evaluates one symbol. Gates short-circuit to a zero score with a
// single advisory note; otherwise each factor contributes independently,
// missing indicators contributing zero plus a note.
func Score(meta model.TickerMeta, ind model.IndicatorSet, p Params) model.ScoreResult {
	if meta.MarketCap != nil && *meta.MarketCap < marketCapFloor {
		return model.ScoreResult{Notes: []string{"Market cap below $500M gate"}}
	}
	if ind.AvgDollarVol20 < p.MinDollarVol {
		return model.ScoreResult{Notes: []string{
			fmt.Sprintf("Liquidity below %s/day gate", money(p.MinDollarVol)),
		}}
	}

	var why []model.CriteriaHit
	var notes []string

	// Trend: close above the 50-day, 50-day above the 200-day.
	trend := 0.0
	var trendParts []string
	if ind.SMA50 != nil {
		if ind.Close > *ind.SMA50 {
			trend += 10
			trendParts = append(trendParts, "close > SMA50")
		}
	} else {
		notes = append(notes, "SMA50 unavailable (not enough history)")
	}
	if ind.SMA50 != nil && ind.SMA200 != nil {
		if *ind.SMA50 > *ind.SMA200 {
			trend += 10
			trendParts = append(trendParts, "SMA50 > SMA200")
		}
	} else if ind.SMA200 == nil {
		notes = append(notes, "SMA200 unavailable (not enough history)")
	}
	trend = clamp(trend, 0, trendCap)
	if trend > 0 {
		why = append(why, model.CriteriaHit{Label: "Trend", Value: strings.Join(trendParts, ", ")})
	}

	// Compression: tight Bollinger bands plus low ATR%.
	compression := 0.0
	var compParts []string
	if ind.BBWidth != nil {
		credit := clamp(12*(1-*ind.BBWidth/0.12), 0, 12)
		compression += credit
		if credit > 0 {
			compParts = append(compParts, fmt.Sprintf("BB width %.2f%%", *ind.BBWidth*100))
		}
	} else {
		notes = append(notes, "Bollinger width unavailable (not enough history)")
	}
	if ind.ATRPct != nil {
		credit := clamp(8*(0.06-*ind.ATRPct)/0.04, 0, 8)
		compression += credit
		if credit > 0 {
			compParts = append(compParts, fmt.Sprintf("ATR %.2f%%", *ind.ATRPct*100))
		}
	} else {
		notes = append(notes, "ATR unavailable (not enough history)")
	}
	compression = clamp(compression, 0, compressionCap)
	if compression > 0 {
		why = append(why, model.CriteriaHit{Label: "Compression", Value: strings.Join(compParts, ", ")})
	}

	// Breakout: the 55-day trigger dominates the 20-day one.
	breakout := 0.0
	switch {
	case ind.Breakout55:
		breakout = 25
		why = append(why, model.CriteriaHit{Label: "Breakout", Value: "55-day high cleared"})
	case ind.Breakout20:
		breakout = 18
		why = append(why, model.CriteriaHit{Label: "Breakout", Value: "20-day high cleared"})
	}

	// Volume: relative volume ramp from 1.0x to 2.5x.
	volume := 0.0
	rvol := 0.0
	if ind.RVOL != nil {
		rvol = *ind.RVOL
		volume = clamp(volumeCap*(rvol-1.0)/1.5, 0, volumeCap)
		if volume > 0 {
			why = append(why, model.CriteriaHit{Label: "Volume", Value: fmt.Sprintf("RVOL %.2fx", rvol)})
		}
	} else {
		notes = append(notes, "RVOL unavailable (not enough history)")
	}

	// Momentum: reward the 55-70 RSI band, fade the extremes.
	momentum := 0.0
	if ind.RSI14 != nil {
		r := *ind.RSI14
		switch {
		case r >= 55 && r <= 70:
			momentum = 10
		case (r >= 50 && r < 55) || (r > 70 && r <= 80):
			momentum = 6
		case r > 80:
			momentum = 2
		}
		if momentum > 0 {
			why = append(why, model.CriteriaHit{Label: "Momentum", Value: fmt.Sprintf("RSI %.0f", r)})
		}
	} else {
		notes = append(notes, "RSI unavailable (not enough history)")
	}

	// Liquidity bonus: linear to $10M/day.
	liquidity := clamp(liquidityCap*ind.AvgDollarVol20/10_000_000, 0, liquidityCap)
	if liquidity > 0 {
		why = append(why, model.CriteriaHit{
			Label: "Liquidity",
			Value: fmt.Sprintf("%s/day", money(ind.AvgDollarVol20)),
		})
	}

	score := clamp(trend+compression+breakout+volume+momentum+liquidity, 0, 100)

	// Strong match: either a confirmed 55-day breakout, or a fully
	// pre-qualified coiled setup (trend + tight compression + rising volume).
	strong := score >= p.Threshold &&
		(ind.Breakout55 || (trend >= 16 && compression >= 14 && rvol >= 1.2))
	if !strong {
		notes = append(notes, "Did not meet strong-match structure (breakout OR tight+trend+volume)")
	}

	return model.ScoreResult{
		Score:       score,
		StrongMatch: strong,
		Why:         why,
		Notes:       notes,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func money(v float64) string {
	return "$" + humanize.Comma(int64(v))
}
