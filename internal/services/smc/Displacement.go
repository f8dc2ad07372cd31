package smc

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// Displacement tags trailing bars whose body dwarfs the all-history average.
func (a *Analyzer) Displacement(series models.Series) []Displacement {
	found := []Displacement{}
	n := len(series)
	if n < 5 {
		return found
	}

	avgBody := 0.0
	for _, b := range series {
		avgBody += b.Body()
	}
	avgBody /= float64(n)
	if avgBody == 0 {
		return found
	}

	for i := n - a.params.DisplacementWindow; i < n; i++ {
		if i < 0 {
			continue
		}
		b := series[i]
		if b.Body() <= a.params.DisplacementRatio*avgBody {
			continue
		}
		direction, text := DirectionBullish, "Bullish displacement: aggressive buying"
		if b.IsBearish() {
			direction, text = DirectionBearish, "Bearish displacement: aggressive selling"
		}
		found = append(found, Displacement{
			Direction:   direction,
			Multiplier:  numeric.Percent(b.Body() / avgBody),
			Index:       i,
			Timestamp:   b.Timestamp,
			Description: text,
		})
	}
	return found
}
