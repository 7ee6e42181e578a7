package engine

import (
	"math"

	"tradethrust/internal/model"
)

// buildTradePlan derives entry, stop, targets and position size from the
// pivot and the structural support level. A degenerate plan (zero or
// negative risk per share) sizes to zero shares and is never acceptable.
func buildTradePlan(series *model.PriceSeries, frame *model.IndicatorFrame, pivot float64, cfg Config) model.TradePlan {
	i := series.Len() - 1
	current := series.Bars[i].Close
	if pivot <= 0 {
		pivot = current
	}

	buy := pivot * (1 + cfg.EntryBufferPct)
	if current > buy {
		buy = current
	}

	stop := buy * (1 - cfg.StopPct)
	if support := frame.Support20[i]; model.Valid(support) && support > 0 {
		structural := support * (1 - cfg.SupportBufferPct)
		if structural > stop && structural < buy {
			stop = structural
		}
	}

	plan := model.TradePlan{
		BuyPoint: buy,
		StopLoss: stop,
	}
	for j, m := range cfg.TargetMultiples {
		plan.Targets[j] = buy * m
	}

	riskPerShare := buy - stop
	if riskPerShare <= 0 {
		return plan
	}
	plan.RewardRiskRatio = (plan.Targets[0] - buy) / riskPerShare
	plan.PositionSize = int(math.Floor(cfg.PortfolioValue * cfg.RiskFraction / riskPerShare))
	plan.RiskAcceptable = plan.RewardRiskRatio >= cfg.MinRewardRisk
	return plan
}
