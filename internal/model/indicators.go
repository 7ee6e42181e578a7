package model

import "math"

// IndicatorFrame holds per-bar derived series aligned index-for-index with a
// PriceSeries. Positions where a rolling window has not yet filled carry NaN;
// use Valid before comparing values.
type IndicatorFrame struct {
	SMA50  []float64
	SMA150 []float64
	SMA200 []float64

	EMA10 []float64
	EMA21 []float64

	// Trailing 52-week extremes over min(252, i+1) bars, valid from index 0.
	High252 []float64
	Low252  []float64

	AvgVolume20 []float64
	AvgVolume50 []float64

	// DailyRange is (high-low)/close in percent.
	DailyRange []float64
	AvgRange20 []float64

	// Structural levels over a trailing 20-bar window.
	Support20    []float64
	Resistance20 []float64
}

// Valid reports whether an indicator value is available at its index.
func Valid(v float64) bool {
	return !math.IsNaN(v)
}
