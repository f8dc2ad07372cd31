// Package patterns recognises candlestick and chart patterns on the trailing
// bars of a series.
package patterns

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

type Detector struct {
	params Params
}

func NewDetector(params Params) *Detector {
	return &Detector{params: params}
}

// DetectAll returns every match in detection order: single, double, triple,
// then chart patterns. Overlapping matches on one bar are all kept.
func (d *Detector) DetectAll(series models.Series) []Pattern {
	found := make([]Pattern, 0)
	if len(series) < d.params.MinBars {
		return found
	}

	found = append(found, d.singleCandle(series)...)
	found = append(found, d.doubleCandle(series)...)
	found = append(found, d.tripleCandle(series)...)
	found = append(found, d.chartPatterns(series)...)

	return found
}

func newPattern(series models.Series, index int, kind, direction, strength, description string) Pattern {
	bar := series[index]
	return Pattern{
		Type:        kind,
		Index:       index,
		Price:       numeric.Price(bar.Close),
		Timestamp:   bar.Timestamp,
		Direction:   direction,
		Strength:    strength,
		Description: description,
	}
}

func directionOf(bar models.Bar) string {
	switch {
	case bar.IsBullish():
		return DirectionBullish
	case bar.IsBearish():
		return DirectionBearish
	}
	return DirectionNeutral
}
