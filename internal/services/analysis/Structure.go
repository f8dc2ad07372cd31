package analysis

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
	"SmartMoneyAnalyzer/internal/services/indicators"
)

const (
	StructureBullish       = "HH+HL (Bullish Structure)"
	StructureBearish       = "LH+LL (Bearish Structure)"
	StructureConsolidation = "Consolidation"
	StructureUncertain     = "uncertain"
)

// marketStructure reads the trend from the last two swing highs and lows of
// the whole series, or from the two halves of the series when swings are missing.
func (m *MarketAnalyzer) marketStructure(bars models.Series) StructureState {
	p := m.params
	highs := bars.Highs()
	lows := bars.Lows()
	closes := bars.Closes()

	swingHighs := swingPoints(bars, highs, numeric.LocalMaxima(highs, p.SwingWindow))
	swingLows := swingPoints(bars, lows, numeric.LocalMinima(lows, p.SwingWindow))

	state := StructureState{
		Trend:     TrendRanging,
		Structure: StructureUncertain,
		Strength:  m.trendStrength(closes),
	}

	swung := len(swingHighs) >= 2 && len(swingLows) >= 2
	if swung {
		lastHigh, prevHigh := swingHighs[len(swingHighs)-1].Price, swingHighs[len(swingHighs)-2].Price
		lastLow, prevLow := swingLows[len(swingLows)-1].Price, swingLows[len(swingLows)-2].Price
		state.Trend, state.Structure = readStructure(lastHigh, prevHigh, lastLow, prevLow)
	} else if len(bars) >= 2 {
		// Without two swings each side, compare the extremes of the two halves
		mid := len(bars) / 2
		trend, structure := readStructure(
			numeric.Max(highs[mid:]), numeric.Max(highs[:mid]),
			numeric.Min(lows[mid:]), numeric.Min(lows[:mid]),
		)
		if trend != TrendRanging {
			state.Trend, state.Structure = trend, structure
		}
	}

	// Break of structure runs against the established trend
	price := closes[len(closes)-1]
	switch {
	case !swung:
	case state.Trend == TrendBullish:
		state.BOSDetected = price < swingLows[len(swingLows)-1].Price
	case state.Trend == TrendBearish:
		state.BOSDetected = price > swingHighs[len(swingHighs)-1].Price
	}

	state.CHoCHDetected = m.changeOfCharacter(closes)
	state.SwingHighs = lastSwings(swingHighs, p.SwingLimit)
	state.SwingLows = lastSwings(swingLows, p.SwingLimit)
	return state
}

func readStructure(lastHigh, prevHigh, lastLow, prevLow float64) (string, string) {
	switch {
	case lastHigh > prevHigh && lastLow > prevLow:
		return TrendBullish, StructureBullish
	case lastHigh < prevHigh && lastLow < prevLow:
		return TrendBearish, StructureBearish
	}
	return TrendRanging, StructureConsolidation
}

// changeOfCharacter flags any recent close-to-close move larger than a
// multiple of the average absolute move.
func (m *MarketAnalyzer) changeOfCharacter(closes []float64) bool {
	n := len(closes)
	window := m.params.CHoCHWindow
	if n <= window {
		return false
	}

	deltas := make([]float64, n-1)
	for i := 1; i < n; i++ {
		deltas[i-1] = math.Abs(closes[i] - closes[i-1])
	}
	limit := m.params.CHoCHMultiplier * numeric.Mean(deltas)

	// The newest delta is left out
	for i := n - window; i < n-1; i++ {
		if math.Abs(closes[i]-closes[i-1]) > limit {
			return true
		}
	}
	return false
}

// trendStrength scales the distance from the moving average to 0..100.
func (m *MarketAnalyzer) trendStrength(closes []float64) float64 {
	period := m.params.StrengthPeriod
	average, ok := m.indicators.SMA(closes, period)
	if !ok || average == 0 {
		return 0
	}
	deviation := (closes[len(closes)-1] - average) / average * 100
	return numeric.Percent(math.Min(math.Abs(deviation)*10, 100))
}

func (m *MarketAnalyzer) detectRegime(bars models.Series, technical indicators.Readings) Regime {
	if len(bars) < m.params.PredictionMinBars {
		return unknownRegime()
	}

	p := m.params
	atrPercent := technical.ATR.Value().Percent
	adx := technical.ADX.Value().Value

	volatility := "low"
	switch {
	case atrPercent > p.HighVolatility:
		volatility = "high"
	case atrPercent > p.MediumVolatility:
		volatility = "medium"
	}

	regime := Regime{Volatility: volatility, ADX: adx, ATRPercent: atrPercent}
	trending := adx > p.TrendingADX
	switch {
	case trending && volatility == "high":
		regime.Type = "trending_high_vol"
		regime.Description = "Strong trending market with high volatility. Momentum strategies preferred"
	case trending:
		regime.Type = "trending_low_vol"
		regime.Description = "Steady trending market. Trend following strategies work well"
	case volatility == "high":
		regime.Type = "ranging_high_vol"
		regime.Description = "Choppy ranging market. Be cautious and wait for clearer signals"
	default:
		regime.Type = "ranging_low_vol"
		regime.Description = "Quiet ranging market. Mean reversion strategies may work"
	}
	return regime
}

func swingPoints(bars models.Series, values []float64, idx []int) []SwingPoint {
	points := make([]SwingPoint, 0, len(idx))
	for _, i := range idx {
		points = append(points, SwingPoint{
			Index:     i,
			Price:     values[i],
			Timestamp: bars[i].Timestamp,
		})
	}
	return points
}

func lastSwings(points []SwingPoint, n int) []SwingPoint {
	if len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]SwingPoint, len(points))
	for i, point := range points {
		point.Price = numeric.Price(point.Price)
		out[i] = point
	}
	return out
}
