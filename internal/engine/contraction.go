package engine

import (
	"fmt"
	"math"

	"tradethrust/internal/model"
)

// buildContractions pairs each swing HIGH with the deepest swing LOW that
// occurs after it and before the next swing HIGH. Pullbacks shallower than
// MinDeclinePercent are discarded, as are pairs with non-positive prices.
// Returned indices are positions within bars.
func buildContractions(bars []model.PriceBar, swings []model.SwingPoint, cfg Config) []model.Contraction {
	out := make([]model.Contraction, 0, 4)
	for i, sw := range swings {
		if sw.Kind != model.SwingHigh {
			continue
		}
		bound := len(bars)
		for j := i + 1; j < len(swings); j++ {
			if swings[j].Kind == model.SwingHigh {
				bound = swings[j].Index
				break
			}
		}
		lowIdx := -1
		lowPrice := math.Inf(1)
		for j := i + 1; j < len(swings); j++ {
			lo := swings[j]
			if lo.Kind != model.SwingLow || lo.Index <= sw.Index || lo.Index >= bound {
				continue
			}
			if lo.Price < lowPrice {
				lowPrice = lo.Price
				lowIdx = lo.Index
			}
		}
		if lowIdx < 0 {
			continue
		}
		if sw.Price <= 0 || lowPrice <= 0 {
			continue
		}
		decline := (sw.Price - lowPrice) / sw.Price * 100
		if decline < cfg.MinDeclinePercent {
			continue
		}
		out = append(out, model.Contraction{
			StartIndex:     sw.Index,
			EndIndex:       lowIdx,
			HighPrice:      sw.Price,
			LowPrice:       lowPrice,
			DeclinePercent: decline,
			DurationBars:   lowIdx - sw.Index,
			VolumeRatio:    pullbackVolumeRatio(bars, sw.Index, lowIdx, cfg.VolumeBaselineWindow),
		})
	}
	return out
}

// pullbackVolumeRatio compares average volume during the pullback with the
// average over the baseline window before the swing high. A missing or dry
// baseline yields a neutral 1.0.
func pullbackVolumeRatio(bars []model.PriceBar, start, end, baseline int) float64 {
	pullback := meanVolume(bars, start, end)
	baseStart := start - baseline
	if baseStart < 0 {
		baseStart = 0
	}
	base := meanVolume(bars, baseStart, start-1)
	if base <= 0 {
		return 1.0
	}
	return pullback / base
}

func meanVolume(bars []model.PriceBar, start, end int) float64 {
	if start > end {
		return 0
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		sum += bars[i].Volume
	}
	return sum / float64(end-start+1)
}

// vcpAssessment is the outcome of the five-check volatility contraction
// battery over one base.
type vcpAssessment struct {
	Checks     []model.CheckResult
	Detected   bool
	Confidence float64
	Pivot      float64
	BaseWeeks  float64
}

// assessVCP runs the five contraction checks. With no contractions every
// check fails and the pivot is zero.
func assessVCP(contractions []model.Contraction, lastClose float64, cfg Config) vcpAssessment {
	var a vcpAssessment
	n := len(contractions)

	tightening := n >= 2
	for i := 1; i < n; i++ {
		if contractions[i].DeclinePercent >= contractions[i-1].DeclinePercent {
			tightening = false
			break
		}
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "progressive_tightening",
		Passed: tightening,
		Detail: declineSequence(contractions),
	})

	dryUp := n > 0
	worst := 0.0
	for _, c := range contractions {
		if c.VolumeRatio > worst {
			worst = c.VolumeRatio
		}
		if c.VolumeRatio >= cfg.VolumeDryUpRatio {
			dryUp = false
		}
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "volume_dry_up",
		Passed: dryUp,
		Detail: fmt.Sprintf("max pullback volume ratio %.2f vs limit %.2f", worst, cfg.VolumeDryUpRatio),
	})

	finalTight := false
	finalDecline := 0.0
	if n > 0 {
		finalDecline = contractions[n-1].DeclinePercent
		finalTight = finalDecline < cfg.FinalDeclinePercent
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "final_tightness",
		Passed: finalTight,
		Detail: fmt.Sprintf("final contraction %.1f%% vs limit %.1f%%", finalDecline, cfg.FinalDeclinePercent),
	})

	baseOK := false
	if n > 0 {
		a.BaseWeeks = float64(contractions[n-1].EndIndex-contractions[0].StartIndex) / 5.0
		baseOK = a.BaseWeeks >= cfg.BaseMinWeeks && a.BaseWeeks <= cfg.BaseMaxWeeks
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "base_duration",
		Passed: baseOK,
		Detail: fmt.Sprintf("base %.1f weeks, want %.0f-%.0f", a.BaseWeeks, cfg.BaseMinWeeks, cfg.BaseMaxWeeks),
	})

	nearPivot := false
	if n > 0 {
		a.Pivot = contractions[n-1].HighPrice
		if a.Pivot > 0 {
			dist := math.Abs(lastClose-a.Pivot) / a.Pivot
			nearPivot = dist <= cfg.PivotProximityPct
		}
	}
	a.Checks = append(a.Checks, model.CheckResult{
		Name:   "pivot_proximity",
		Passed: nearPivot,
		Detail: fmt.Sprintf("close %.2f vs pivot %.2f", lastClose, a.Pivot),
	})

	passed := 0
	for _, c := range a.Checks {
		if c.Passed {
			passed++
		}
	}
	a.Confidence = float64(passed) / float64(len(a.Checks)) * 100
	a.Detected = passed >= cfg.VCPPassThreshold
	return a
}

func declineSequence(contractions []model.Contraction) string {
	if len(contractions) == 0 {
		return "no contractions"
	}
	s := ""
	for i, c := range contractions {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%.1f%%", c.DeclinePercent)
	}
	return s
}
