package patterns

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

func (d *Detector) doubleCandle(series models.Series) []Pattern {
	var found []Pattern
	n := len(series)
	for i := n - d.params.DoubleLookback; i < n; i++ {
		if i < 1 {
			continue
		}
		found = append(found, d.checkPair(series, i)...)
	}
	return found
}

// checkPair compares bar i with bar i-1.
func (d *Detector) checkPair(series models.Series, i int) []Pattern {
	prev, curr := series[i-1], series[i]
	p := d.params
	prevBody := prev.Body()
	currBody := curr.Body()

	var found []Pattern

	engulfStrength := StrengthModerate
	if currBody > p.StrongEngulfRatio*prevBody {
		engulfStrength = StrengthStrong
	}

	switch {
	case prev.IsBearish() && curr.IsBullish() && curr.Open < prev.Close && curr.Close > prev.Open:
		found = append(found, newPattern(series, i, BullishEngulfing, DirectionBullish, engulfStrength,
			"Bullish engulfing: buyers overwhelmed the prior bearish candle"))
	case prev.IsBullish() && curr.IsBearish() && curr.Open > prev.Close && curr.Close < prev.Open:
		found = append(found, newPattern(series, i, BearishEngulfing, DirectionBearish, engulfStrength,
			"Bearish engulfing: sellers overwhelmed the prior bullish candle"))
	}

	if currBody < p.HaramiBodyRatio*prevBody {
		switch {
		case prev.IsBearish() && curr.IsBullish() && curr.Open > prev.Close && curr.Close < prev.Open:
			found = append(found, newPattern(series, i, BullishHarami, DirectionBullish, StrengthModerate,
				"Bullish harami: selling momentum is stalling inside the prior body"))
		case prev.IsBullish() && curr.IsBearish() && curr.Open < prev.Close && curr.Close > prev.Open:
			found = append(found, newPattern(series, i, BearishHarami, DirectionBearish, StrengthModerate,
				"Bearish harami: buying momentum is stalling inside the prior body"))
		}
	}

	// Tweezers ignore candle colour
	tolerance := p.TweezerTolerance * math.Min(prevBody, currBody)
	if math.Abs(prev.High-curr.High) < tolerance {
		top := newPattern(series, i, TweezerTop, DirectionBearish, StrengthModerate,
			"Tweezer top: matching highs rejected twice")
		top.Price = numeric.Price(math.Max(prev.High, curr.High))
		found = append(found, top)
	}
	if math.Abs(prev.Low-curr.Low) < tolerance {
		bottom := newPattern(series, i, TweezerBottom, DirectionBullish, StrengthModerate,
			"Tweezer bottom: matching lows held twice")
		bottom.Price = numeric.Price(math.Min(prev.Low, curr.Low))
		found = append(found, bottom)
	}

	return found
}
