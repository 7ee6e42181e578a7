package calculator

import "math"

// RollingMax computes the trailing window maximum at every index. Indices
// with fewer than minPeriods samples are NaN; pass minPeriods 1 for an
// expanding window that is valid from the first bar.
func RollingMax(values []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < minPeriods {
			out[i] = math.NaN()
			continue
		}
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		max := math.Inf(-1)
		for j := start; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

// RollingMin is the trailing window minimum counterpart of RollingMax.
func RollingMin(values []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < minPeriods {
			out[i] = math.NaN()
			continue
		}
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		min := math.Inf(1)
		for j := start; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}

// DailyRangeSeries computes (high-low)/close in percent for every bar.
// Bars with a non-positive close are NaN.
func DailyRangeSeries(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if closes[i] <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (highs[i] - lows[i]) / closes[i] * 100
	}
	return out
}
