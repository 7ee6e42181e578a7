package engine

import (
	"fmt"

	"tradethrust/internal/calculator"
)

// Config holds every threshold the analysis pipeline uses. Percent-style
// knobs ending in Pct are fractions (0.07 means 7%); knobs ending in
// Percent are percent values (15 means 15%).
type Config struct {
	// Minimum daily bars before analysis is attempted.
	MinBars int `yaml:"min_bars"`

	// Indicator windows.
	SMAFast     int `yaml:"sma_fast"`
	SMAMid      int `yaml:"sma_mid"`
	SMASlow     int `yaml:"sma_slow"`
	EMAFast     int `yaml:"ema_fast"`
	EMASlow     int `yaml:"ema_slow"`
	RangeWindow int `yaml:"range_window"`
	VolumeShort int `yaml:"volume_short"`
	VolumeLong  int `yaml:"volume_long"`

	// Trend template.
	SlopeLookback      int     `yaml:"slope_lookback"`
	LowClearancePct    float64 `yaml:"low_clearance_pct"`  // close >= (1+x) * 52w low
	HighProximityPct   float64 `yaml:"high_proximity_pct"` // close >= (1-x) * 52w high
	RSMinRating        float64 `yaml:"rs_min_rating"`
	TrendPassThreshold int     `yaml:"trend_pass_threshold"` // conditions required of 10

	// Swing detection and contraction analysis.
	SwingWindow          int     `yaml:"swing_window"` // half-window, 2..5
	PatternWindowBars    int     `yaml:"pattern_window_bars"`
	MinDeclinePercent    float64 `yaml:"min_decline_percent"`
	FinalDeclinePercent  float64 `yaml:"final_decline_percent"`
	VolumeDryUpRatio     float64 `yaml:"volume_dry_up_ratio"`
	BaseMinWeeks         float64 `yaml:"base_min_weeks"`
	BaseMaxWeeks         float64 `yaml:"base_max_weeks"`
	PivotProximityPct    float64 `yaml:"pivot_proximity_pct"`
	VCPPassThreshold     int     `yaml:"vcp_pass_threshold"` // checks required of 5
	VolumeBaselineWindow int     `yaml:"volume_baseline_window"`

	// Breakout confirmation.
	PivotLookback      int     `yaml:"pivot_lookback"`
	BreakoutBufferPct  float64 `yaml:"breakout_buffer_pct"` // close > pivot * (1+x)
	VolumeSurgeRatio   float64 `yaml:"volume_surge_ratio"`
	TightRangePercent  float64 `yaml:"tight_range_percent"`
	TightRangeLookback int     `yaml:"tight_range_lookback"`
	BreakoutStrict     bool    `yaml:"breakout_strict"` // all 3 vs majority

	// Composite score weights, normally summing to 100.
	WeightTrend    float64 `yaml:"weight_trend"`
	WeightVCP      float64 `yaml:"weight_vcp"`
	WeightBreakout float64 `yaml:"weight_breakout"`
	WeightClean    float64 `yaml:"weight_clean"`

	// Risk and position plan.
	EntryBufferPct   float64    `yaml:"entry_buffer_pct"`
	StopPct          float64    `yaml:"stop_pct"`
	SupportBufferPct float64    `yaml:"support_buffer_pct"`
	SupportLookback  int        `yaml:"support_lookback"`
	TargetMultiples  [3]float64 `yaml:"target_multiples"`
	MinRewardRisk    float64    `yaml:"min_reward_risk"`
	PortfolioValue   float64    `yaml:"portfolio_value"`
	RiskFraction     float64    `yaml:"risk_fraction"`
}

// DefaultConfig returns the standard daily-bar configuration.
func DefaultConfig() Config {
	return Config{
		MinBars: 50,

		SMAFast:     50,
		SMAMid:      150,
		SMASlow:     200,
		EMAFast:     10,
		EMASlow:     21,
		RangeWindow: 252,
		VolumeShort: 20,
		VolumeLong:  50,

		SlopeLookback:      20,
		LowClearancePct:    0.30,
		HighProximityPct:   0.25,
		RSMinRating:        70,
		TrendPassThreshold: 10,

		SwingWindow:          5,
		PatternWindowBars:    75,
		MinDeclinePercent:    3,
		FinalDeclinePercent:  15,
		VolumeDryUpRatio:     0.9,
		BaseMinWeeks:         5,
		BaseMaxWeeks:         15,
		PivotProximityPct:    0.05,
		VCPPassThreshold:     3,
		VolumeBaselineWindow: 20,

		PivotLookback:      20,
		BreakoutBufferPct:  0.002,
		VolumeSurgeRatio:   1.4,
		TightRangePercent:  3,
		TightRangeLookback: 5,
		BreakoutStrict:     true,

		WeightTrend:    50,
		WeightVCP:      25,
		WeightBreakout: 20,
		WeightClean:    5,

		EntryBufferPct:   0.01,
		StopPct:          0.07,
		SupportBufferPct: 0.02,
		SupportLookback:  20,
		TargetMultiples:  [3]float64{1.20, 1.35, 1.50},
		MinRewardRisk:    2.0,
		PortfolioValue:   100000,
		RiskFraction:     0.01,
	}
}

// StrictConfig requires every trend condition, every VCP check and every
// breakout condition to pass.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.TrendPassThreshold = 10
	cfg.VCPPassThreshold = 5
	cfg.BreakoutStrict = true
	return cfg
}

// LenientConfig accepts a majority of conditions at every stage.
func LenientConfig() Config {
	cfg := DefaultConfig()
	cfg.TrendPassThreshold = 7
	cfg.VCPPassThreshold = 3
	cfg.BreakoutStrict = false
	return cfg
}

// PresetConfig returns a named preset, defaulting to DefaultConfig.
func PresetConfig(name string) (Config, error) {
	switch name {
	case "", "default":
		return DefaultConfig(), nil
	case "strict":
		return StrictConfig(), nil
	case "lenient":
		return LenientConfig(), nil
	}
	return Config{}, fmt.Errorf("unknown analysis preset %q", name)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.MinBars <= 0 {
		return fmt.Errorf("min_bars must be positive, got %d", c.MinBars)
	}
	for _, w := range []struct {
		name string
		v    int
	}{
		{"sma_fast", c.SMAFast},
		{"sma_mid", c.SMAMid},
		{"sma_slow", c.SMASlow},
		{"ema_fast", c.EMAFast},
		{"ema_slow", c.EMASlow},
		{"range_window", c.RangeWindow},
		{"volume_short", c.VolumeShort},
		{"volume_long", c.VolumeLong},
		{"slope_lookback", c.SlopeLookback},
		{"pattern_window_bars", c.PatternWindowBars},
		{"volume_baseline_window", c.VolumeBaselineWindow},
		{"pivot_lookback", c.PivotLookback},
		{"tight_range_lookback", c.TightRangeLookback},
		{"support_lookback", c.SupportLookback},
	} {
		if w.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", w.name, w.v)
		}
	}
	if c.SwingWindow < 2 || c.SwingWindow > 5 {
		return fmt.Errorf("swing_window must be between 2 and 5, got %d", c.SwingWindow)
	}
	if c.TrendPassThreshold < 1 || c.TrendPassThreshold > 10 {
		return fmt.Errorf("trend_pass_threshold must be between 1 and 10, got %d", c.TrendPassThreshold)
	}
	if c.VCPPassThreshold < 1 || c.VCPPassThreshold > 5 {
		return fmt.Errorf("vcp_pass_threshold must be between 1 and 5, got %d", c.VCPPassThreshold)
	}
	if c.MinDeclinePercent <= 0 || c.FinalDeclinePercent <= 0 {
		return fmt.Errorf("decline thresholds must be positive")
	}
	if c.VolumeDryUpRatio <= 0 || c.VolumeSurgeRatio <= 0 {
		return fmt.Errorf("volume ratios must be positive")
	}
	if c.BaseMinWeeks <= 0 || c.BaseMaxWeeks < c.BaseMinWeeks {
		return fmt.Errorf("base duration range invalid: %.1f..%.1f weeks", c.BaseMinWeeks, c.BaseMaxWeeks)
	}
	if c.StopPct <= 0 || c.StopPct >= 1 {
		return fmt.Errorf("stop_pct must be in (0, 1), got %g", c.StopPct)
	}
	if c.EntryBufferPct < 0 || c.EntryBufferPct >= 1 {
		return fmt.Errorf("entry_buffer_pct must be in [0, 1), got %g", c.EntryBufferPct)
	}
	if c.SupportBufferPct < 0 || c.SupportBufferPct >= 1 {
		return fmt.Errorf("support_buffer_pct must be in [0, 1), got %g", c.SupportBufferPct)
	}
	if c.RiskFraction <= 0 || c.RiskFraction >= 1 {
		return fmt.Errorf("risk_fraction must be in (0, 1), got %g", c.RiskFraction)
	}
	if c.PortfolioValue <= 0 {
		return fmt.Errorf("portfolio_value must be positive, got %g", c.PortfolioValue)
	}
	if c.WeightTrend < 0 || c.WeightVCP < 0 || c.WeightBreakout < 0 || c.WeightClean < 0 {
		return fmt.Errorf("score weights must be non-negative")
	}
	for i, m := range c.TargetMultiples {
		if m <= 1 {
			return fmt.Errorf("target multiple %d must exceed 1, got %g", i+1, m)
		}
	}
	if c.MinRewardRisk <= 0 {
		return fmt.Errorf("min_reward_risk must be positive, got %g", c.MinRewardRisk)
	}
	return nil
}

func (c Config) windows() calculator.Windows {
	return calculator.Windows{
		SMAFast:        c.SMAFast,
		SMAMid:         c.SMAMid,
		SMASlow:        c.SMASlow,
		EMAFast:        c.EMAFast,
		EMASlow:        c.EMASlow,
		RangeWindow:    c.RangeWindow,
		VolumeShort:    c.VolumeShort,
		VolumeLong:     c.VolumeLong,
		StructLookback: c.SupportLookback,
	}
}
