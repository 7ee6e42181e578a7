package engine

import (
	"testing"
	"time"

	"tradethrust/internal/model"
)

func seriesFromCloses(symbol string, closes []float64) *model.PriceSeries {
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars}
}

func flatSeries(symbol string, n int, level float64) *model.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = level
	}
	return seriesFromCloses(symbol, closes)
}

func growthSeries(symbol string, n int, start, dailyRate float64) *model.PriceSeries {
	closes := make([]float64, n)
	p := start
	for i := range closes {
		closes[i] = p
		p *= 1 + dailyRate
	}
	return seriesFromCloses(symbol, closes)
}

func TestExcessReturnToRating_Stepwise(t *testing.T) {
	tests := []struct {
		excess float64
		want   float64
	}{
		{35, 95},
		{30, 95},
		{22, 90},
		{16, 85},
		{12, 80},
		{7, 75},
		{0, 70},
		{-3, 60},
		{-8, 50},
		{-12, 40},
		{-25, 30},
	}
	for _, tt := range tests {
		if got := excessReturnToRating(tt.excess); got != tt.want {
			t.Errorf("excess %+.0f: expected rating %v, got %v", tt.excess, tt.want, got)
		}
	}
}

func TestRateRelativeStrength_PrefersBenchmark(t *testing.T) {
	cfg := DefaultConfig()
	stock := growthSeries("GROW", 300, 50, 0.003)
	bench := flatSeries("SPY", 300, 100)

	rs := rateRelativeStrength(stock, bench, cfg)
	if rs.Source != model.RSBenchmark {
		t.Fatalf("expected benchmark source, got %s", rs.Source)
	}
	// A steady 0.3%/day advance beats a flat benchmark by far more
	// than 30% on the longer horizons.
	if rs.Value != 95 {
		t.Errorf("expected top rating 95, got %v", rs.Value)
	}
}

func TestRateRelativeStrength_SelfRankedFallback(t *testing.T) {
	cfg := DefaultConfig()
	// Accelerating advance: every trailing window beats the one before
	// it, so the latest return ranks at the top of its own history.
	closes := make([]float64, 300)
	p := 50.0
	for i := range closes {
		closes[i] = p
		p *= 1 + 0.00005*float64(i)
	}
	stock := seriesFromCloses("GROW", closes)

	rs := rateRelativeStrength(stock, nil, cfg)
	if rs.Source != model.RSSelfRanked {
		t.Fatalf("expected self-ranked source without benchmark, got %s", rs.Source)
	}
	if rs.Value != 100 {
		t.Errorf("expected percentile 100 for accelerating advance, got %v", rs.Value)
	}
}

func TestRateRelativeStrength_Unavailable(t *testing.T) {
	cfg := DefaultConfig()
	short := flatSeries("NEW", 30, 100)

	rs := rateRelativeStrength(short, nil, cfg)
	if rs.Source != model.RSUnavailable {
		t.Fatalf("expected unavailable for short history, got %s", rs.Source)
	}
}

func TestTrailingReturn(t *testing.T) {
	s := seriesFromCloses("X", []float64{100, 110, 121})
	got, ok := trailingReturn(s, 2)
	if !ok {
		t.Fatal("expected return to be available")
	}
	if got < 20.99 || got > 21.01 {
		t.Errorf("expected 21%%, got %v", got)
	}
	if _, ok := trailingReturn(s, 3); ok {
		t.Error("horizon longer than history should be unavailable")
	}
}
