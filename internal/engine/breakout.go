package engine

import (
	"fmt"

	"tradethrust/internal/model"
)

// breakoutAssessment is the outcome of the three breakout conditions.
type breakoutAssessment struct {
	Checks    []model.CheckResult
	Score     int
	Total     int
	Confirmed bool
	Pivot     float64
}

// assessBreakout checks price, volume and range at the last bar against the
// pivot. vcpPivot comes from the contraction base when one was found; zero
// falls back to the highest high over the pivot lookback, excluding the
// current bar so a breakout day cannot raise its own pivot.
func assessBreakout(series *model.PriceSeries, frame *model.IndicatorFrame, vcpPivot float64, cfg Config) breakoutAssessment {
	i := series.Len() - 1
	last := series.Bars[i]

	pivot := vcpPivot
	if pivot <= 0 {
		pivot = trailingHigh(series, i-1, cfg.PivotLookback)
	}

	a := breakoutAssessment{Pivot: pivot, Total: 3}

	trigger := pivot * (1 + cfg.BreakoutBufferPct)
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "close_above_pivot",
		Passed: pivot > 0 && last.Close > trigger,
		Detail: fmt.Sprintf("close %.2f vs pivot trigger %.2f", last.Close, trigger),
	})

	avgVol := frame.AvgVolume50[i]
	volOK := model.Valid(avgVol) && avgVol > 0 && last.Volume >= cfg.VolumeSurgeRatio*avgVol
	volRatio := 0.0
	if model.Valid(avgVol) && avgVol > 0 {
		volRatio = last.Volume / avgVol
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "volume_surge",
		Passed: volOK,
		Detail: fmt.Sprintf("volume %.2fx 50-bar average, want %.1fx", volRatio, cfg.VolumeSurgeRatio),
	})

	meanRange, rangeOK := trailingMeanRange(frame, i, cfg.TightRangeLookback)
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "tight_range",
		Passed: rangeOK && meanRange < cfg.TightRangePercent,
		Detail: fmt.Sprintf("avg daily range %.2f%% over %d bars, want < %.1f%%", meanRange, cfg.TightRangeLookback, cfg.TightRangePercent),
	})

	for _, c := range a.Checks {
		if c.Passed {
			a.Score++
		}
	}
	if cfg.BreakoutStrict {
		a.Confirmed = a.Score == a.Total
	} else {
		a.Confirmed = a.Score*2 > a.Total
	}
	return a
}

// trailingHigh is the highest high over the window ending at end, or 0 when
// the window does not fit.
func trailingHigh(series *model.PriceSeries, end, window int) float64 {
	start := end - window + 1
	if start < 0 || end < 0 {
		return 0
	}
	high := 0.0
	for j := start; j <= end; j++ {
		if series.Bars[j].High > high {
			high = series.Bars[j].High
		}
	}
	return high
}

func trailingMeanRange(frame *model.IndicatorFrame, end, window int) (float64, bool) {
	start := end - window + 1
	if start < 0 {
		return 0, false
	}
	sum := 0.0
	for j := start; j <= end; j++ {
		if !model.Valid(frame.DailyRange[j]) {
			return 0, false
		}
		sum += frame.DailyRange[j]
	}
	return sum / float64(window), true
}
