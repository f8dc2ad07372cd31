package patterns

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

func (d *Detector) chartPatterns(series models.Series) []Pattern {
	p := d.params
	if len(series) < p.ChartWindow {
		return nil
	}

	var found []Pattern
	offset := len(series) - p.ChartWindow
	window := series[offset:]
	lastIdx := len(series) - 1

	if pattern, ok := d.checkRange(series, window, lastIdx); ok {
		found = append(found, pattern)
	}
	if pattern, ok := d.checkTriangle(series, window, lastIdx); ok {
		found = append(found, pattern)
	}
	return found
}

func (d *Detector) checkRange(series, window models.Series, lastIdx int) (Pattern, bool) {
	p := d.params
	highs := window.Highs()
	lows := window.Lows()

	resistance := highs[0]
	support := lows[0]
	for i := range highs {
		resistance = math.Max(resistance, highs[i])
		support = math.Min(support, lows[i])
	}

	var resTouches, supTouches int
	for i := range highs {
		if highs[i] >= resistance*(1-p.RangeTolerance) {
			resTouches++
		}
		if lows[i] <= support*(1+p.RangeTolerance) {
			supTouches++
		}
	}
	if resTouches < p.RangeTouches || supTouches < p.RangeTouches {
		return Pattern{}, false
	}

	pattern := newPattern(series, lastIdx, Range, DirectionNeutral, StrengthModerate,
		"Trading range: price is respecting both the recent high and low")
	res, sup := numeric.Price(resistance), numeric.Price(support)
	pattern.Resistance = &res
	pattern.Support = &sup
	return pattern, true
}

func (d *Detector) checkTriangle(series, window models.Series, lastIdx int) (Pattern, bool) {
	p := d.params
	highs := window.Highs()
	lows := window.Lows()

	highTrend, okHigh := swingSlope(highs, numeric.LocalMaxima(highs, p.SwingWindow), p.TriangleSwings)
	lowTrend, okLow := swingSlope(lows, numeric.LocalMinima(lows, p.SwingWindow), p.TriangleSwings)
	if !okHigh || !okLow {
		return Pattern{}, false
	}

	switch {
	case highTrend < 0 && lowTrend > 0:
		return newPattern(series, lastIdx, SymmetricTriangle, DirectionNeutral, StrengthModerate,
			"Symmetric triangle: lower highs and higher lows are converging"), true
	case highTrend < 0 && math.Abs(lowTrend) < math.Abs(highTrend)*p.TriangleFlat:
		return newPattern(series, lastIdx, DescendingTriangle, DirectionBearish, StrengthModerate,
			"Descending triangle: lower highs pressing into flat support"), true
	case lowTrend > 0 && math.Abs(highTrend) < math.Abs(lowTrend)*p.TriangleFlat:
		return newPattern(series, lastIdx, AscendingTriangle, DirectionBullish, StrengthModerate,
			"Ascending triangle: higher lows pressing into flat resistance"), true
	}
	return Pattern{}, false
}

// swingSlope is the change from the oldest to the newest of the last k swings.
func swingSlope(values []float64, idx []int, k int) (float64, bool) {
	if len(idx) < 2 {
		return 0, false
	}
	if len(idx) > k {
		idx = idx[len(idx)-k:]
	}
	return values[idx[len(idx)-1]] - values[idx[0]], true
}
