package engine

import (
	"fmt"
	"strings"

	"tradethrust/internal/model"
)

// recommend maps the stage outcomes to a final verdict.
func recommend(trendPassed, vcpDetected, breakoutConfirmed, riskAcceptable bool) model.Recommendation {
	switch {
	case trendPassed && vcpDetected && breakoutConfirmed && riskAcceptable:
		return model.StrongBuy
	case trendPassed && vcpDetected && riskAcceptable:
		return model.BuyOnBreakout
	case trendPassed && riskAcceptable:
		return model.Watchlist
	default:
		return model.Avoid
	}
}

// rationale renders a one-line explanation from the populated result. It
// reads only result fields so the text always matches the verdict.
func rationale(r *model.AnalysisResult) string {
	if r.InsufficientData {
		return fmt.Sprintf("insufficient data: %d bars available", r.BarsAnalyzed)
	}

	parts := make([]string, 0, 4)
	if r.TrendPassed {
		parts = append(parts, fmt.Sprintf("trend template passed %d/%d", r.TrendScore, r.TrendTotal))
	} else {
		parts = append(parts, fmt.Sprintf("trend template failed %d/%d", r.TrendScore, r.TrendTotal))
	}
	if r.VCPDetected {
		parts = append(parts, fmt.Sprintf("contraction base found (%.0f%% confidence, %d pullbacks)", r.VCPConfidence, len(r.Contractions)))
	} else {
		parts = append(parts, "no valid contraction base")
	}
	if r.BreakoutConfirmed {
		parts = append(parts, fmt.Sprintf("breakout confirmed above pivot %.2f", r.Pivot))
	} else {
		parts = append(parts, fmt.Sprintf("breakout not confirmed (%d/%d conditions)", r.BreakoutScore, r.BreakoutTotal))
	}
	if r.Plan.RiskAcceptable {
		parts = append(parts, fmt.Sprintf("reward/risk %.2f acceptable", r.Plan.RewardRiskRatio))
	} else {
		parts = append(parts, fmt.Sprintf("reward/risk %.2f unacceptable", r.Plan.RewardRiskRatio))
	}
	return strings.Join(parts, "; ")
}
