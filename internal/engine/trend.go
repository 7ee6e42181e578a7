package engine

import (
	"fmt"

	"tradethrust/internal/model"
)

// trendAssessment is the outcome of the ten-condition trend template.
type trendAssessment struct {
	Checks []model.CheckResult
	Score  int
	Total  int
	Passed bool
}

// assessTrend evaluates the trend template at the last bar of the series.
// A condition whose indicator window never filled counts as failed, so a
// short history can pass only a lenient threshold.
func assessTrend(series *model.PriceSeries, frame *model.IndicatorFrame, rs model.RSRating, cfg Config) trendAssessment {
	i := series.Len() - 1
	close := series.Bars[i].Close

	sma50 := frame.SMA50[i]
	sma150 := frame.SMA150[i]
	sma200 := frame.SMA200[i]
	low252 := frame.Low252[i]
	high252 := frame.High252[i]

	cmp := func(name string, ok bool, detail string) model.CheckResult {
		return model.CheckResult{Name: name, Passed: ok, Detail: detail}
	}

	checks := []model.CheckResult{
		cmp("close_above_sma50",
			model.Valid(sma50) && close > sma50,
			fmt.Sprintf("close %.2f vs SMA50 %.2f", close, sma50)),
		cmp("close_above_sma150",
			model.Valid(sma150) && close > sma150,
			fmt.Sprintf("close %.2f vs SMA150 %.2f", close, sma150)),
		cmp("close_above_sma200",
			model.Valid(sma200) && close > sma200,
			fmt.Sprintf("close %.2f vs SMA200 %.2f", close, sma200)),
		cmp("sma150_above_sma200",
			model.Valid(sma150) && model.Valid(sma200) && sma150 > sma200,
			fmt.Sprintf("SMA150 %.2f vs SMA200 %.2f", sma150, sma200)),
		cmp("sma50_above_sma150",
			model.Valid(sma50) && model.Valid(sma150) && sma50 > sma150,
			fmt.Sprintf("SMA50 %.2f vs SMA150 %.2f", sma50, sma150)),
		cmp("sma50_above_sma200",
			model.Valid(sma50) && model.Valid(sma200) && sma50 > sma200,
			fmt.Sprintf("SMA50 %.2f vs SMA200 %.2f", sma50, sma200)),
		sma200RisingCheck(frame, i, cfg.SlopeLookback),
		cmp("above_52w_low",
			model.Valid(low252) && close >= (1+cfg.LowClearancePct)*low252,
			fmt.Sprintf("close %.2f vs %.0f%% over 52w low %.2f", close, cfg.LowClearancePct*100, low252)),
		cmp("near_52w_high",
			model.Valid(high252) && close >= (1-cfg.HighProximityPct)*high252,
			fmt.Sprintf("close %.2f vs %.0f%% under 52w high %.2f", close, cfg.HighProximityPct*100, high252)),
		cmp("rs_rating",
			rs.Source != model.RSUnavailable && rs.Value >= cfg.RSMinRating,
			fmt.Sprintf("RS %.0f (%s) vs minimum %.0f", rs.Value, rs.Source, cfg.RSMinRating)),
	}

	score := 0
	for _, c := range checks {
		if c.Passed {
			score++
		}
	}
	return trendAssessment{
		Checks: checks,
		Score:  score,
		Total:  len(checks),
		Passed: score >= cfg.TrendPassThreshold,
	}
}

// sma200RisingCheck compares the 200-bar average now against its value
// lookback bars ago.
func sma200RisingCheck(frame *model.IndicatorFrame, i, lookback int) model.CheckResult {
	check := model.CheckResult{Name: "sma200_rising"}
	j := i - lookback
	if j < 0 || !model.Valid(frame.SMA200[i]) || !model.Valid(frame.SMA200[j]) {
		check.Detail = "SMA200 history unavailable"
		return check
	}
	check.Passed = frame.SMA200[i] > frame.SMA200[j]
	check.Detail = fmt.Sprintf("SMA200 %.2f vs %.2f %d bars ago", frame.SMA200[i], frame.SMA200[j], lookback)
	return check
}
