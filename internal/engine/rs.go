package engine

import "tradethrust/internal/model"

// rsHorizons are the lookbacks, in bars, averaged for the benchmark
// comparison: roughly 1, 3, 6 and 12 months.
var rsHorizons = [4]int{21, 63, 125, 252}

// rsStrategy computes a relative strength rating when its inputs are
// available. Strategies are tried in order; the first available one wins.
type rsStrategy struct {
	source    model.RSSource
	available func() bool
	compute   func() float64
}

// rateRelativeStrength produces an RS rating for the series. The benchmark
// comparison is preferred; without a benchmark the rating falls back to a
// percentile rank of the trailing return within the symbol's own history.
func rateRelativeStrength(series, benchmark *model.PriceSeries, cfg Config) model.RSRating {
	strategies := []rsStrategy{
		{
			source: model.RSBenchmark,
			available: func() bool {
				return benchmark != nil && minHorizonMet(series, benchmark)
			},
			compute: func() float64 { return benchmarkRating(series, benchmark) },
		},
		{
			source: model.RSSelfRanked,
			available: func() bool {
				return series.Len() > rsHorizons[1]+1
			},
			compute: func() float64 { return selfRankedRating(series, rsHorizons[1]) },
		},
	}
	for _, s := range strategies {
		if s.available() {
			return model.RSRating{Source: s.source, Value: s.compute()}
		}
	}
	return model.RSRating{Source: model.RSUnavailable}
}

func minHorizonMet(series, benchmark *model.PriceSeries) bool {
	shortest := rsHorizons[0]
	return series.Len() > shortest && benchmark.Len() > shortest
}

// benchmarkRating averages the excess return over the standard horizons and
// maps it onto a stepwise 30..95 scale.
func benchmarkRating(series, benchmark *model.PriceSeries) float64 {
	sum, count := 0.0, 0
	for _, h := range rsHorizons {
		sr, ok1 := trailingReturn(series, h)
		br, ok2 := trailingReturn(benchmark, h)
		if !ok1 || !ok2 {
			continue
		}
		sum += sr - br
		count++
	}
	if count == 0 {
		return 70
	}
	return excessReturnToRating(sum / float64(count))
}

// excessReturnToRating converts a mean excess return in percent to a rating.
func excessReturnToRating(excess float64) float64 {
	switch {
	case excess >= 30:
		return 95
	case excess >= 20:
		return 90
	case excess >= 15:
		return 85
	case excess >= 10:
		return 80
	case excess >= 5:
		return 75
	case excess >= 0:
		return 70
	case excess >= -5:
		return 60
	case excess >= -10:
		return 50
	case excess >= -15:
		return 40
	default:
		return 30
	}
}

// selfRankedRating is the percentile rank of the latest trailing return
// among all trailing returns of the same horizon in the series history.
func selfRankedRating(series *model.PriceSeries, horizon int) float64 {
	closes := series.Closes()
	returns := make([]float64, 0, len(closes))
	for i := horizon; i < len(closes); i++ {
		if closes[i-horizon] <= 0 {
			continue
		}
		returns = append(returns, (closes[i]/closes[i-horizon]-1)*100)
	}
	if len(returns) == 0 {
		return 0
	}
	latest := returns[len(returns)-1]
	below := 0
	for _, r := range returns {
		if r <= latest {
			below++
		}
	}
	return float64(below) / float64(len(returns)) * 100
}

// trailingReturn is the percent change over the last h bars.
func trailingReturn(series *model.PriceSeries, h int) (float64, bool) {
	n := series.Len()
	if n <= h {
		return 0, false
	}
	base := series.Bars[n-1-h].Close
	if base <= 0 {
		return 0, false
	}
	return (series.Bars[n-1].Close/base - 1) * 100, true
}
