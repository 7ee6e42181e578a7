package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"tradethrust/internal/calculator"
	"tradethrust/internal/model"
)

// strongBuySeries builds 300 daily bars: a long advance, a three-step
// contraction base with drying volume, a tight shelf under the pivot and a
// high-volume breakout bar at the end.
func strongBuySeries() *model.PriceSeries {
	day := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, 0, 300)
	add := func(close, vol, spread float64) {
		bars = append(bars, model.PriceBar{
			Date:   day,
			Open:   close * (1 - spread/2),
			High:   close * (1 + spread),
			Low:    close * (1 - spread),
			Close:  close,
			Volume: vol,
		})
		day = day.AddDate(0, 0, 1)
	}

	// Advance: 231 bars compounding at 0.3%/day.
	price := 50.0
	for i := 0; i < 231; i++ {
		add(price, 1e6, 0.005)
		price *= 1.003
	}
	price = bars[len(bars)-1].Close
	peak := price

	leg := func(target float64, n int, vol float64) {
		start := price
		for i := 1; i <= n; i++ {
			add(start*math.Pow(target/start, float64(i)/float64(n)), vol, 0.005)
		}
		price = target
	}

	// Base: pullbacks of roughly 11%, 7% and 5%, lighter volume on the
	// way down.
	leg(peak*0.90, 11, 550e3)
	leg(peak*0.99, 10, 1e6)
	leg(peak*0.99*0.94, 10, 550e3)
	leg(peak*0.9801, 9, 1e6)
	pivotClose := price
	leg(pivotClose*0.96, 8, 550e3)
	leg(pivotClose*0.995, 15, 1e6)

	// Tight shelf just under the pivot.
	for i := 0; i < 5; i++ {
		add(pivotClose*0.99, 700e3, 0.004)
	}

	// Breakout bar: gap up through the pivot on heavy volume.
	breakout := pivotClose * 1.03
	bars = append(bars, model.PriceBar{
		Date:   day,
		Open:   breakout * 0.995,
		High:   breakout * 1.002,
		Low:    breakout * 0.99,
		Close:  breakout,
		Volume: 2.5e6,
	})

	return &model.PriceSeries{Symbol: "LEAD", Bars: bars}
}

func TestAnalyze_EndToEndStrongBuy(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	series := strongBuySeries()
	bench := flatSeries("SPY", 300, 100)

	result := eng.Analyze(series, bench)

	if result.InsufficientData {
		t.Fatal("300 bars should not be insufficient")
	}
	if result.TrendScore != result.TrendTotal {
		for _, c := range result.TrendChecks {
			if !c.Passed {
				t.Logf("failed trend check: %s (%s)", c.Name, c.Detail)
			}
		}
		t.Fatalf("expected full trend template, got %d/%d", result.TrendScore, result.TrendTotal)
	}
	if !result.VCPDetected {
		for _, c := range result.VCPChecks {
			t.Logf("vcp check %s passed=%v (%s)", c.Name, c.Passed, c.Detail)
		}
		t.Fatal("expected contraction base detection")
	}
	if len(result.Contractions) != 3 {
		t.Fatalf("expected 3 contractions, got %d: %+v", len(result.Contractions), result.Contractions)
	}
	for i := 1; i < len(result.Contractions); i++ {
		if result.Contractions[i].DeclinePercent >= result.Contractions[i-1].DeclinePercent {
			t.Errorf("declines should tighten: %v then %v",
				result.Contractions[i-1].DeclinePercent, result.Contractions[i].DeclinePercent)
		}
	}
	if !result.BreakoutConfirmed {
		for _, c := range result.BreakoutChecks {
			t.Logf("breakout check %s passed=%v (%s)", c.Name, c.Passed, c.Detail)
		}
		t.Fatal("expected breakout confirmation")
	}
	if result.CompositeScore < 80 {
		t.Errorf("expected composite score of at least 80, got %v", result.CompositeScore)
	}
	if !result.Plan.RiskAcceptable || result.Plan.PositionSize <= 0 {
		t.Errorf("expected an acceptable sized plan, got %+v", result.Plan)
	}
	if result.Plan.StopLoss >= result.Plan.BuyPoint {
		t.Errorf("stop %v must sit below buy point %v", result.Plan.StopLoss, result.Plan.BuyPoint)
	}
	if result.Recommendation != model.StrongBuy {
		t.Errorf("expected STRONG_BUY, got %s (%s)", result.Recommendation, result.Rationale)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	series := strongBuySeries()
	bench := flatSeries("SPY", 300, 100)

	first := eng.Analyze(series, bench)
	second := eng.Analyze(series, bench)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of the same input must be identical")
	}
}

func TestAnalyze_InsufficientData(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	result := eng.Analyze(flatSeries("NEW", 30, 100), nil)

	if !result.InsufficientData {
		t.Fatal("30 bars must flag insufficient data")
	}
	if result.Recommendation != model.Avoid {
		t.Errorf("expected AVOID, got %s", result.Recommendation)
	}
	if result.CompositeScore != 0 {
		t.Errorf("expected zero composite score, got %v", result.CompositeScore)
	}
	if result.BarsAnalyzed != 30 {
		t.Errorf("expected 30 bars reported, got %d", result.BarsAnalyzed)
	}
}

func TestAnalyze_DowntrendAvoided(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	closes := make([]float64, 300)
	p := 200.0
	for i := range closes {
		closes[i] = p
		p *= 0.998
	}
	result := eng.Analyze(seriesFromCloses("FALL", closes), nil)

	if result.TrendPassed {
		t.Error("a steady decline must not pass the trend template")
	}
	if result.Recommendation != model.Avoid {
		t.Errorf("expected AVOID for downtrend, got %s", result.Recommendation)
	}
}

func TestAssessBreakout_FallbackPivot(t *testing.T) {
	cfg := DefaultConfig()
	series := flatSeries("FLAT", 30, 100)
	// Final bar clears the trailing high on a wide close.
	last := &series.Bars[29]
	last.Close = 103
	last.High = 103.5
	last.Open = 100

	frame := calculator.Compute(series, cfg.windows())
	a := assessBreakout(series, frame, 0, cfg)

	if a.Pivot != 100 {
		t.Fatalf("expected trailing-high pivot 100, got %v", a.Pivot)
	}
	var priceCheck model.CheckResult
	for _, c := range a.Checks {
		if c.Name == "close_above_pivot" {
			priceCheck = c
		}
	}
	if !priceCheck.Passed {
		t.Errorf("close 103 should clear pivot trigger: %s", priceCheck.Detail)
	}
	// 30 bars cannot fill the 50-bar volume average, so strict
	// confirmation is impossible while a majority still passes.
	if a.Confirmed {
		t.Error("strict confirmation requires the volume condition")
	}
	lenient := LenientConfig()
	if b := assessBreakout(series, frame, 0, lenient); !b.Confirmed {
		t.Error("lenient confirmation should accept 2 of 3 conditions")
	}
}
