package engine

import "tradethrust/internal/model"

// detectSwings finds confirmed local extremes in bars using a symmetric
// half-window of w bars on each side. A bar is a swing HIGH when its high is
// greater than or equal to every high in the window and strictly greater
// than at least one of them; swing LOWs mirror this on lows. Flat plateaus
// therefore yield at most one point, the first occurrence. The first and
// last w bars can never confirm a swing.
func detectSwings(bars []model.PriceBar, w int) []model.SwingPoint {
	if len(bars) < 2*w+1 {
		return nil
	}
	swings := make([]model.SwingPoint, 0, len(bars)/5)
	lastHigh := -1
	lastLow := -1
	for i := w; i < len(bars)-w; i++ {
		isHigh, anyLowerHigh := true, false
		isLow, anyHigherLow := true, false
		for j := i - w; j <= i+w; j++ {
			if j == i {
				continue
			}
			if bars[j].High > bars[i].High {
				isHigh = false
			} else if bars[j].High < bars[i].High {
				anyLowerHigh = true
			}
			if bars[j].Low < bars[i].Low {
				isLow = false
			} else if bars[j].Low > bars[i].Low {
				anyHigherLow = true
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh && anyLowerHigh && !duplicateSwing(swings, lastHigh, i, w, bars[i].High) {
			swings = append(swings, model.SwingPoint{Index: i, Price: bars[i].High, Kind: model.SwingHigh})
			lastHigh = len(swings) - 1
		}
		if isLow && anyHigherLow && !duplicateSwing(swings, lastLow, i, w, bars[i].Low) {
			swings = append(swings, model.SwingPoint{Index: i, Price: bars[i].Low, Kind: model.SwingLow})
			lastLow = len(swings) - 1
		}
	}
	return swings
}

// duplicateSwing reports whether a candidate repeats the previous swing of
// the same kind at the same price within the half-window.
func duplicateSwing(swings []model.SwingPoint, last, idx, w int, price float64) bool {
	if last < 0 {
		return false
	}
	prev := swings[last]
	return prev.Price == price && idx-prev.Index <= w
}
