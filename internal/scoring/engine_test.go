package scoring

import (
	"math"
	"strings"
	"testing"
	"time"

	"SwingScout/internal/indicator"
	"SwingScout/internal/model"
)

func fp(v float64) *float64 { return &v }

func capOf(v float64) *float64 { return &v }

// coiledSet is a no-breakout setup that fully pre-qualifies on structure:
// aligned trend, tight compression, rising volume.
func coiledSet() model.IndicatorSet {
	return model.IndicatorSet{
		Close:          100,
		SMA50:          fp(95),
		SMA200:         fp(90),
		RSI14:          fp(60),
		ATRPct:         fp(0.02),
		BBWidth:        fp(0.0),
		RVOL:           fp(2.5),
		AvgDollarVol20: 10_000_000,
	}
}

func TestScore_MarketCapGate(t *testing.T) {
	meta := model.TickerMeta{Symbol: "TINY", MarketCap: capOf(499_999_999)}
	res := Score(meta, coiledSet(), DefaultParams())
	if res.Score != 0 {
		t.Errorf("score = %v, want 0 regardless of indicators", res.Score)
	}
	if res.StrongMatch {
		t.Error("gated symbol must never be a strong match")
	}
	if len(res.Why) != 0 {
		t.Errorf("gated result must carry no criteria hits, got %v", res.Why)
	}
	if len(res.Notes) != 1 || !strings.Contains(res.Notes[0], "Market cap") {
		t.Errorf("expected single market-cap gate note, got %v", res.Notes)
	}
}

func TestScore_UnknownMarketCapPassesGate(t *testing.T) {
	meta := model.TickerMeta{Symbol: "UNK"}
	res := Score(meta, coiledSet(), DefaultParams())
	if res.Score == 0 {
		t.Error("unknown market cap must not trip the gate")
	}
}

func TestScore_LiquidityGate(t *testing.T) {
	set := coiledSet()
	set.AvgDollarVol20 = 4_999_999
	res := Score(model.TickerMeta{Symbol: "ILLQ", MarketCap: capOf(1e9)}, set, DefaultParams())
	if res.Score != 0 || res.StrongMatch {
		t.Errorf("expected gated zero result, got score=%v strong=%v", res.Score, res.StrongMatch)
	}
	if len(res.Notes) != 1 || !strings.Contains(res.Notes[0], "Liquidity") {
		t.Errorf("expected single liquidity gate note, got %v", res.Notes)
	}
}

func TestScore_CoiledSetupIsStrong(t *testing.T) {
	res := Score(model.TickerMeta{Symbol: "COIL", MarketCap: capOf(1e9)}, coiledSet(), DefaultParams())
	// trend 20 + compression 20 + volume 25 + momentum 10 + liquidity 10
	if math.Abs(res.Score-85) > 1e-9 {
		t.Errorf("score = %v, want 85", res.Score)
	}
	if !res.StrongMatch {
		t.Error("coiled setup meeting all structural floors must be a strong match")
	}
}

func TestScore_ThresholdBlocksStrongMatch(t *testing.T) {
	p := DefaultParams()
	p.Threshold = 90
	res := Score(model.TickerMeta{Symbol: "COIL", MarketCap: capOf(1e9)}, coiledSet(), p)
	if res.StrongMatch {
		t.Errorf("score %v below threshold %v must not be strong", res.Score, p.Threshold)
	}
}

func TestScore_Breakout55ForcesStructure(t *testing.T) {
	// Breakout55 alone satisfies the structural clause: no compression or
	// volume floors needed as long as the score clears the threshold.
	set := model.IndicatorSet{
		Close:          100,
		SMA50:          fp(95),
		SMA200:         fp(90),
		RSI14:          fp(62),
		ATRPct:         fp(0.02),
		BBWidth:        fp(0.03),
		RVOL:           fp(2.5),
		AvgDollarVol20: 10_000_000,
		Breakout20:     true,
		Breakout55:     true,
	}
	res := Score(model.TickerMeta{Symbol: "BRK", MarketCap: capOf(2e9)}, set, DefaultParams())
	if res.Score < 75 {
		t.Fatalf("score = %v, want >= 75", res.Score)
	}
	if !res.StrongMatch {
		t.Error("55-day breakout above threshold must be a strong match")
	}
	if !hasHit(res.Why, "Breakout", "55-day") {
		t.Errorf("expected a 55-day breakout hit, got %v", res.Why)
	}
}

func TestScore_Breakout20Scores18(t *testing.T) {
	set := coiledSet()
	set.Breakout20 = true
	res := Score(model.TickerMeta{Symbol: "B20", MarketCap: capOf(1e9)}, set, DefaultParams())
	if res.Score != 100 {
		// 85 from the coiled setup + 18 breakout, clamped to 100.
		t.Errorf("score = %v, want clamp at 100", res.Score)
	}
	if !hasHit(res.Why, "Breakout", "20-day") {
		t.Errorf("expected a 20-day breakout hit, got %v", res.Why)
	}
}

func TestScore_MissingIndicatorsNoteNotFail(t *testing.T) {
	set := model.IndicatorSet{Close: 100, AvgDollarVol20: 10_000_000}
	res := Score(model.TickerMeta{Symbol: "NEW", MarketCap: capOf(1e9)}, set, DefaultParams())
	if res.Score != 10 {
		t.Errorf("score = %v, want liquidity bonus only", res.Score)
	}
	if res.StrongMatch {
		t.Error("bare snapshot must not be a strong match")
	}
	for _, want := range []string{"SMA50", "SMA200", "Bollinger", "ATR", "RVOL", "RSI"} {
		if !hasNote(res.Notes, want) {
			t.Errorf("expected advisory note mentioning %q, got %v", want, res.Notes)
		}
	}
}

func TestScore_MomentumBands(t *testing.T) {
	tests := []struct {
		rsi  float64
		want float64
	}{
		{54.9, 6},
		{55, 10},
		{70, 10},
		{70.1, 6},
		{80, 6},
		{80.1, 2},
		{49.9, 0},
	}
	for _, tt := range tests {
		set := model.IndicatorSet{Close: 100, RSI14: fp(tt.rsi), AvgDollarVol20: 5_000_000}
		res := Score(model.TickerMeta{Symbol: "RSI", MarketCap: capOf(1e9)}, set, DefaultParams())
		// liquidity contributes 5 at $5M/day
		if got := res.Score - 5; got != tt.want {
			t.Errorf("RSI %.1f: momentum = %v, want %v", tt.rsi, got, tt.want)
		}
	}
}

// Flat $50 tape with passable liquidity: no trend credit, no breakout, RVOL
// exactly 1. Compression is maximal by construction (zero width, zero ATR)
// and a lossless window pins RSI at 100, worth only the overbought residual.
func TestScore_FlatTape(t *testing.T) {
	bars := make([]model.Candle, 300)
	for i := range bars {
		bars[i] = model.Candle{
			Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open: 50, High: 50, Low: 50, Close: 50,
			Volume: 200_000,
		}
	}
	set := indicator.Snapshot(bars)
	res := Score(model.TickerMeta{Symbol: "FLAT", MarketCap: capOf(1e9)}, set, DefaultParams())

	// compression 20 + momentum 2 + liquidity 10
	if res.Score != 32 {
		t.Errorf("score = %v, want 32", res.Score)
	}
	if res.StrongMatch {
		t.Error("flat tape must not be a strong match")
	}
	for _, label := range []string{"Trend", "Breakout", "Volume"} {
		for _, h := range res.Why {
			if h.Label == label {
				t.Errorf("flat tape must not earn a %s hit", label)
			}
		}
	}
}

// A tight 20-day base resolving through the prior 55-day high on 2.5x volume
// clears the default threshold on breakout + volume alone.
func TestScore_BreakoutFromTightBase(t *testing.T) {
	bars := make([]model.Candle, 300)
	for i := range bars {
		bars[i] = model.Candle{
			Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open: 50, High: 50.5, Low: 49.5, Close: 50,
			Volume: 100_000,
		}
	}
	last := &bars[len(bars)-1]
	last.Close = 55
	last.High = 55.2
	last.Volume = 250_000

	set := indicator.Snapshot(bars)
	if !set.Breakout55 || !set.Breakout20 {
		t.Fatal("expected both breakout flags")
	}
	res := Score(model.TickerMeta{Symbol: "BASE", MarketCap: capOf(1e9)}, set, DefaultParams())
	if res.Score < 75 {
		t.Errorf("score = %v, want >= 75", res.Score)
	}
	if !res.StrongMatch {
		t.Error("threshold 75 with a 55-day breakout must be a strong match")
	}
	if !hasHit(res.Why, "Volume", "2.50x") {
		t.Errorf("expected RVOL 2.50x hit, got %v", res.Why)
	}
}

func hasHit(hits []model.CriteriaHit, label, valueSubstr string) bool {
	for _, h := range hits {
		if h.Label == label && strings.Contains(h.Value, valueSubstr) {
			return true
		}
	}
	return false
}

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}
