package calculator

import "tradethrust/internal/model"

// Windows collects the rolling window lengths used by Compute.
type Windows struct {
	SMAFast int // 50
	SMAMid  int // 150
	SMASlow int // 200

	EMAFast int // 10
	EMASlow int // 21

	RangeWindow int // 252

	VolumeShort int // 20
	VolumeLong  int // 50

	StructLookback int // 20, support/resistance and avg range
}

// DefaultWindows returns the standard daily-bar window set.
func DefaultWindows() Windows {
	return Windows{
		SMAFast:        50,
		SMAMid:         150,
		SMASlow:        200,
		EMAFast:        10,
		EMASlow:        21,
		RangeWindow:    252,
		VolumeShort:    20,
		VolumeLong:     50,
		StructLookback: 20,
	}
}

// Compute derives the full indicator frame for a price series. Each output
// series is aligned index-for-index with the input bars; positions where a
// window has not filled are NaN. No value at index i depends on bars after i.
func Compute(series *model.PriceSeries, w Windows) *model.IndicatorFrame {
	n := series.Len()
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range series.Bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
	}

	frame := &model.IndicatorFrame{
		SMA50:  SMASeries(closes, w.SMAFast),
		SMA150: SMASeries(closes, w.SMAMid),
		SMA200: SMASeries(closes, w.SMASlow),

		EMA10: EMASeries(closes, w.EMAFast),
		EMA21: EMASeries(closes, w.EMASlow),

		High252: RollingMax(highs, w.RangeWindow, 1),
		Low252:  RollingMin(lows, w.RangeWindow, 1),

		AvgVolume20: SMASeries(volumes, w.VolumeShort),
		AvgVolume50: SMASeries(volumes, w.VolumeLong),

		Support20:    RollingMin(lows, w.StructLookback, w.StructLookback),
		Resistance20: RollingMax(highs, w.StructLookback, w.StructLookback),
	}
	frame.DailyRange = DailyRangeSeries(highs, lows, closes)
	frame.AvgRange20 = SMASeries(frame.DailyRange, w.StructLookback)
	return frame
}
