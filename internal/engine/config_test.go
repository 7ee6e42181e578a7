package engine

import (
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if err := StrictConfig().Validate(); err != nil {
		t.Fatalf("strict config must validate: %v", err)
	}
	if err := LenientConfig().Validate(); err != nil {
		t.Fatalf("lenient config must validate: %v", err)
	}
}

func TestPresetConfig(t *testing.T) {
	strict, err := PresetConfig("strict")
	if err != nil {
		t.Fatal(err)
	}
	if strict.VCPPassThreshold != 5 || !strict.BreakoutStrict {
		t.Error("strict preset should require every check")
	}

	lenient, err := PresetConfig("lenient")
	if err != nil {
		t.Fatal(err)
	}
	if lenient.TrendPassThreshold != 7 || lenient.BreakoutStrict {
		t.Error("lenient preset should accept majorities")
	}

	def, err := PresetConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if def.TrendPassThreshold != 10 {
		t.Error("empty preset name should resolve to defaults")
	}

	if _, err := PresetConfig("aggressive"); err == nil {
		t.Error("unknown preset must error")
	}
}

func TestConfigValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"min bars", func(c *Config) { c.MinBars = 0 }, "min_bars"},
		{"negative window", func(c *Config) { c.SMAFast = -1 }, "sma_fast"},
		{"swing window low", func(c *Config) { c.SwingWindow = 1 }, "swing_window"},
		{"swing window high", func(c *Config) { c.SwingWindow = 6 }, "swing_window"},
		{"trend threshold", func(c *Config) { c.TrendPassThreshold = 11 }, "trend_pass_threshold"},
		{"vcp threshold", func(c *Config) { c.VCPPassThreshold = 0 }, "vcp_pass_threshold"},
		{"stop pct", func(c *Config) { c.StopPct = 1.5 }, "stop_pct"},
		{"risk fraction", func(c *Config) { c.RiskFraction = 1 }, "risk_fraction"},
		{"portfolio", func(c *Config) { c.PortfolioValue = 0 }, "portfolio_value"},
		{"base weeks", func(c *Config) { c.BaseMaxWeeks = 1 }, "base duration"},
		{"target multiple", func(c *Config) { c.TargetMultiples[0] = 0.9 }, "target multiple"},
		{"negative weight", func(c *Config) { c.WeightVCP = -5 }, "weights"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error mentioning %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBars = -1
	if _, err := New(cfg); err == nil {
		t.Fatal("expected constructor to reject invalid config")
	}
}
