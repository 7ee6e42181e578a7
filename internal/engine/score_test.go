package engine

import (
	"math"
	"testing"
)

func TestCompositeScore_FullMarks(t *testing.T) {
	cfg := DefaultConfig()
	trend := trendAssessment{Score: 10, Total: 10, Passed: true}
	vcp := vcpAssessment{Confidence: 100, Detected: true}
	breakout := breakoutAssessment{Score: 3, Total: 3, Confirmed: true}

	got := compositeScore(trend, vcp, breakout, true, cfg)
	if got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
}

func TestCompositeScore_PartialCredit(t *testing.T) {
	cfg := DefaultConfig()
	trend := trendAssessment{Score: 5, Total: 10}
	vcp := vcpAssessment{Confidence: 60}
	breakout := breakoutAssessment{Score: 1, Total: 3}

	// 50*0.5 + 25*0.6 + 20*(1/3) + 0
	want := 25.0 + 15.0 + 20.0/3.0
	got := compositeScore(trend, vcp, breakout, false, cfg)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompositeScore_ClampedToHundred(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeightTrend = 90
	cfg.WeightVCP = 90
	trend := trendAssessment{Score: 10, Total: 10}
	vcp := vcpAssessment{Confidence: 100}
	breakout := breakoutAssessment{Score: 3, Total: 3, Confirmed: true}

	if got := compositeScore(trend, vcp, breakout, true, cfg); got != 100 {
		t.Errorf("overweight config must clamp to 100, got %v", got)
	}
}

func TestCompositeScore_ZeroFloor(t *testing.T) {
	cfg := DefaultConfig()
	got := compositeScore(trendAssessment{Total: 10}, vcpAssessment{}, breakoutAssessment{Total: 3}, false, cfg)
	if got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
