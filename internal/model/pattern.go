package model

// SwingKind labels a swing point as a local extreme of highs or lows.
type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// SwingPoint is a confirmed local extreme in a price series.
type SwingPoint struct {
	Index int       `json:"index"`
	Price float64   `json:"price"`
	Kind  SwingKind `json:"kind"`
}

// Contraction is one high-to-low pullback inside a volatility base.
// Indices are absolute positions in the analyzed series.
type Contraction struct {
	StartIndex     int     `json:"start_index"`
	EndIndex       int     `json:"end_index"`
	HighPrice      float64 `json:"high_price"`
	LowPrice       float64 `json:"low_price"`
	DeclinePercent float64 `json:"decline_percent"`
	DurationBars   int     `json:"duration_bars"`
	// VolumeRatio compares pullback volume to the volume before the high.
	VolumeRatio float64 `json:"volume_ratio"`
}
