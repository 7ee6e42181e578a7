package engine

import "tradethrust/internal/model"

// compositeScore blends the stage results into a 0..100 score. Trend and
// breakout contribute fractionally by condition count, the contraction
// stage by its confidence, and a small bonus rewards the absence of
// distribution-style red flags.
func compositeScore(trend trendAssessment, vcp vcpAssessment, breakout breakoutAssessment, clean bool, cfg Config) float64 {
	score := 0.0
	if trend.Total > 0 {
		score += cfg.WeightTrend * float64(trend.Score) / float64(trend.Total)
	}
	score += cfg.WeightVCP * vcp.Confidence / 100
	if breakout.Confirmed {
		score += cfg.WeightBreakout
	} else if breakout.Total > 0 {
		score += cfg.WeightBreakout * float64(breakout.Score) / float64(breakout.Total)
	}
	if clean {
		score += cfg.WeightClean
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// cleanAction reports the absence of sell-side red flags at the last bar:
// no close below the 50-bar average on above-average volume, and no
// wide-spread bar in the trailing window.
func cleanAction(series *model.PriceSeries, frame *model.IndicatorFrame, cfg Config) bool {
	i := series.Len() - 1
	last := series.Bars[i]

	sma50 := frame.SMA50[i]
	avgVol := frame.AvgVolume50[i]
	if model.Valid(sma50) && model.Valid(avgVol) && last.Close < sma50 && last.Volume > avgVol {
		return false
	}

	avgRange := frame.AvgRange20[i]
	if model.Valid(avgRange) {
		start := i - cfg.TightRangeLookback + 1
		if start < 0 {
			start = 0
		}
		for j := start; j <= i; j++ {
			if model.Valid(frame.DailyRange[j]) && frame.DailyRange[j] > 1.5*avgRange {
				return false
			}
		}
	}
	return true
}
