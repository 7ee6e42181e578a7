package engine

import (
	"fmt"

	"tradethrust/internal/calculator"
	"tradethrust/internal/model"
)

// Engine runs the full analysis pipeline for one symbol. It holds only
// configuration, so a single Engine is safe for concurrent use and the
// same input always yields the same result.
type Engine struct {
	cfg Config
}

// New validates the configuration and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze runs indicators, trend template, contraction detection, breakout
// confirmation, scoring and the trade plan over a daily series. benchmark
// may be nil; relative strength then falls back to self-ranking. The result
// is always complete, never nil.
func (e *Engine) Analyze(series, benchmark *model.PriceSeries) *model.AnalysisResult {
	cfg := e.cfg
	result := &model.AnalysisResult{
		Symbol:       series.Symbol,
		BarsAnalyzed: series.Len(),
	}
	if series.Len() > 0 {
		result.CurrentPrice = series.Last().Close
	}
	if series.Len() < cfg.MinBars {
		result.InsufficientData = true
		result.Recommendation = model.Avoid
		result.Rationale = rationale(result)
		return result
	}

	frame := calculator.Compute(series, cfg.windows())

	result.RS = rateRelativeStrength(series, benchmark, cfg)

	trend := assessTrend(series, frame, result.RS, cfg)
	result.TrendChecks = trend.Checks
	result.TrendScore = trend.Score
	result.TrendTotal = trend.Total
	result.TrendPassed = trend.Passed

	// Contraction analysis runs over the trailing pattern window; swing
	// indices are reported relative to the full series.
	offset := series.Len() - cfg.PatternWindowBars
	if offset < 0 {
		offset = 0
	}
	windowBars := series.Bars[offset:]
	swings := detectSwings(windowBars, cfg.SwingWindow)
	contractions := buildContractions(windowBars, swings, cfg)
	for i := range contractions {
		contractions[i].StartIndex += offset
		contractions[i].EndIndex += offset
	}
	result.Contractions = contractions

	vcp := assessVCP(contractions, result.CurrentPrice, cfg)
	result.VCPChecks = vcp.Checks
	result.VCPDetected = vcp.Detected
	result.VCPConfidence = vcp.Confidence
	result.BaseWeeks = vcp.BaseWeeks

	breakout := assessBreakout(series, frame, vcp.Pivot, cfg)
	result.BreakoutChecks = breakout.Checks
	result.BreakoutScore = breakout.Score
	result.BreakoutTotal = breakout.Total
	result.BreakoutConfirmed = breakout.Confirmed
	result.Pivot = breakout.Pivot

	clean := cleanAction(series, frame, cfg)
	result.CompositeScore = compositeScore(trend, vcp, breakout, clean, cfg)

	result.Plan = buildTradePlan(series, frame, breakout.Pivot, cfg)

	result.Recommendation = recommend(trend.Passed, vcp.Detected, breakout.Confirmed, result.Plan.RiskAcceptable)
	result.Rationale = rationale(result)
	return result
}
