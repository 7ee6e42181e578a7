package model

// Recommendation is the final verdict for a symbol.
type Recommendation string

const (
	StrongBuy     Recommendation = "STRONG_BUY"
	BuyOnBreakout Recommendation = "BUY_ON_BREAKOUT"
	Watchlist     Recommendation = "WATCHLIST"
	Avoid         Recommendation = "AVOID"
)

// CheckResult is one named pass/fail condition with a display detail.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RSSource names the strategy that produced a relative strength rating.
type RSSource string

const (
	RSBenchmark   RSSource = "benchmark"
	RSSelfRanked  RSSource = "self_ranked"
	RSUnavailable RSSource = "unavailable"
)

// RSRating is a relative strength value tagged with how it was computed.
type RSRating struct {
	Source RSSource `json:"source"`
	Value  float64  `json:"value"`
}

// TradePlan holds the entry, exit and sizing numbers for a setup.
type TradePlan struct {
	BuyPoint        float64    `json:"buy_point"`
	StopLoss        float64    `json:"stop_loss"`
	Targets         [3]float64 `json:"targets"`
	RewardRiskRatio float64    `json:"reward_risk_ratio"`
	PositionSize    int        `json:"position_size"`
	RiskAcceptable  bool       `json:"risk_acceptable"`
}

// AnalysisResult is the complete outcome of analyzing one symbol. Every
// field is populated even when the verdict is AVOID, so callers can render
// the full scorecard.
type AnalysisResult struct {
	Symbol           string  `json:"symbol"`
	BarsAnalyzed     int     `json:"bars_analyzed"`
	InsufficientData bool    `json:"insufficient_data"`
	CurrentPrice     float64 `json:"current_price"`

	TrendScore  int           `json:"trend_score"`
	TrendTotal  int           `json:"trend_total"`
	TrendPassed bool          `json:"trend_passed"`
	TrendChecks []CheckResult `json:"trend_checks"`
	RS          RSRating      `json:"rs"`

	Contractions  []Contraction `json:"contractions"`
	VCPDetected   bool          `json:"vcp_detected"`
	VCPConfidence float64       `json:"vcp_confidence"`
	VCPChecks     []CheckResult `json:"vcp_checks"`
	BaseWeeks     float64       `json:"base_weeks"`

	Pivot             float64       `json:"pivot"`
	BreakoutConfirmed bool          `json:"breakout_confirmed"`
	BreakoutScore     int           `json:"breakout_score"`
	BreakoutTotal     int           `json:"breakout_total"`
	BreakoutChecks    []CheckResult `json:"breakout_checks"`

	CompositeScore float64 `json:"composite_score"`

	Plan TradePlan `json:"plan"`

	Recommendation Recommendation `json:"recommendation"`
	Rationale      string         `json:"rationale"`
}
