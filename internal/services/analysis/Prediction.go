package analysis

import (
	"fmt"
	"math"
	"strconv"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
	"SmartMoneyAnalyzer/internal/services/indicators"
)

const predictionTimeframe = "4-8 hours"

// predict projects bullish, neutral and bearish scenarios from the trend and
// the current ATR.
func (m *MarketAnalyzer) predict(bars models.Series, technical indicators.Readings, structure StructureState) Prediction {
	if len(bars) < m.params.PredictionMinBars {
		return unknownPrediction()
	}

	p := m.params
	price := bars.Last().Close
	atr := technical.ATR.Value().Value

	bias, direction := 0.0, "neutral"
	bullish, bearish, neutral := 0.5, 0.5, 0.15
	tilt := structure.Strength / 500
	switch structure.Trend {
	case TrendBullish:
		bias, direction = 1, TrendBullish
		bullish, bearish = 0.55+tilt, 0.30-tilt
	case TrendBearish:
		bias, direction = -1, TrendBearish
		bullish, bearish = 0.30-tilt, 0.55+tilt
	}

	total := bullish + bearish + neutral
	bullish /= total
	bearish /= total
	neutral /= total

	up := numeric.Price(price + p.ScenarioATR*atr)
	flat := numeric.Price(price)
	down := numeric.Price(price - p.ScenarioATR*atr)

	return Prediction{
		Direction:    direction,
		MedianTarget: numeric.Price(price + bias*p.MedianATR*atr),
		UpperBound:   numeric.Price(price + p.BoundATR*atr),
		LowerBound:   numeric.Price(price - p.BoundATR*atr),
		Scenarios: Scenarios{
			Bullish: Scenario{
				Probability: probability(bullish),
				Target:      up,
				Description: fmt.Sprintf("Price rallies to %s", formatPrice(up)),
			},
			Neutral: Scenario{
				Probability: probability(neutral),
				Target:      flat,
				Description: fmt.Sprintf("Price consolidates around %s", formatPrice(flat)),
			},
			Bearish: Scenario{
				Probability: probability(bearish),
				Target:      down,
				Description: fmt.Sprintf("Price drops to %s", formatPrice(down)),
			},
		},
		Timeframe:  predictionTimeframe,
		Confidence: probability(math.Max(bullish, bearish)),
	}
}

func probability(p float64) float64 {
	return numeric.Round(p*100, 1)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
