package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradethrust/internal/model"
)

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func checkMark(passed bool) string {
	if passed {
		return "✅"
	}
	return "❌"
}

// FormatAnalysisReport renders a full scorecard for one symbol.
func FormatAnalysisReport(r *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", r.Symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: $%s | Composite: %.0f/100\n\n", price(r.CurrentPrice), r.CompositeScore))

	if r.InsufficientData {
		b.WriteString(fmt.Sprintf("⚠️ %s\n", r.Rationale))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📈 <b>Trend Template: %d/%d</b> %s\n", r.TrendScore, r.TrendTotal, checkMark(r.TrendPassed)))
	for _, c := range r.TrendChecks {
		if !c.Passed {
			b.WriteString(fmt.Sprintf("  %s %s\n", checkMark(false), c.Detail))
		}
	}
	b.WriteString(fmt.Sprintf("  RS %.0f (%s)\n\n", r.RS.Value, r.RS.Source))

	b.WriteString(fmt.Sprintf("🔻 <b>Contraction Base</b> %s (%.0f%% confidence)\n", checkMark(r.VCPDetected), r.VCPConfidence))
	if len(r.Contractions) > 0 {
		declines := make([]string, len(r.Contractions))
		for i, c := range r.Contractions {
			declines[i] = fmt.Sprintf("%.1f%%", c.DeclinePercent)
		}
		b.WriteString(fmt.Sprintf("  Pullbacks: %s over %.1f weeks\n", strings.Join(declines, " → "), r.BaseWeeks))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("🚀 <b>Breakout: %d/%d</b> %s (pivot $%s)\n\n", r.BreakoutScore, r.BreakoutTotal, checkMark(r.BreakoutConfirmed), price(r.Pivot)))

	b.WriteString("💰 <b>Trade Plan</b>\n")
	b.WriteString(fmt.Sprintf("  Buy: $%s | Stop: $%s\n", price(r.Plan.BuyPoint), price(r.Plan.StopLoss)))
	b.WriteString(fmt.Sprintf("  Targets: $%s / $%s / $%s\n", price(r.Plan.Targets[0]), price(r.Plan.Targets[1]), price(r.Plan.Targets[2])))
	b.WriteString(fmt.Sprintf("  R/R: %.2f | Size: %d shares %s\n\n", r.Plan.RewardRiskRatio, r.Plan.PositionSize, checkMark(r.Plan.RiskAcceptable)))

	b.WriteString(fmt.Sprintf("<b>%s</b>\n%s\n", recommendationBadge(r.Recommendation), r.Rationale))
	return b.String()
}

// FormatScanSummary renders a compact table of a whole watchlist scan,
// best composite first.
func FormatScanSummary(results []*model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>Watchlist Scan</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	if len(results) == 0 {
		b.WriteString("Watchlist is empty.\n")
		return b.String()
	}
	for _, r := range results {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %.0f/100 $%s | %s\n",
			recommendationEmoji(r.Recommendation), r.Symbol, r.CompositeScore, price(r.CurrentPrice), r.Recommendation))
	}
	return b.String()
}

func recommendationBadge(rec model.Recommendation) string {
	return fmt.Sprintf("%s %s", recommendationEmoji(rec), rec)
}

func recommendationEmoji(rec model.Recommendation) string {
	switch rec {
	case model.StrongBuy:
		return "🟢"
	case model.BuyOnBreakout:
		return "🟡"
	case model.Watchlist:
		return "👀"
	default:
		return "🔴"
	}
}
