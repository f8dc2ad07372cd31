package patterns

import "SmartMoneyAnalyzer/internal/models"

func (d *Detector) tripleCandle(series models.Series) []Pattern {
	var found []Pattern
	n := len(series)
	for i := n - d.params.TripleLookback; i < n; i++ {
		if i < 2 {
			continue
		}
		found = append(found, d.checkTriple(series, i)...)
	}
	return found
}

// checkTriple looks at bars i-2, i-1 and i.
func (d *Detector) checkTriple(series models.Series, i int) []Pattern {
	c1, c2, c3 := series[i-2], series[i-1], series[i]
	p := d.params
	midpoint := (c1.Open + c1.Close) / 2
	smallMiddle := c2.Body() < p.StarBodyRatio*c1.Body()

	var found []Pattern

	if c1.IsBearish() && smallMiddle && c3.IsBullish() && c3.Close > midpoint {
		found = append(found, newPattern(series, i, MorningStar, DirectionBullish, StrengthStrong,
			"Morning star: selling exhausted and buyers reclaimed the first candle"))
	}
	if c1.IsBullish() && smallMiddle && c3.IsBearish() && c3.Close < midpoint {
		found = append(found, newPattern(series, i, EveningStar, DirectionBearish, StrengthStrong,
			"Evening star: buying exhausted and sellers reclaimed the first candle"))
	}

	lo, hi := 1-p.SoldiersTolerance, 1+p.SoldiersTolerance
	if c1.IsBullish() && c2.IsBullish() && c3.IsBullish() &&
		c2.Close > c1.Close && c3.Close > c2.Close &&
		c2.Open >= c1.Open*lo && c2.Open <= c1.Close*hi &&
		c3.Open >= c2.Open*lo && c3.Open <= c2.Close*hi {
		found = append(found, newPattern(series, i, ThreeWhiteSoldiers, DirectionBullish, StrengthStrong,
			"Three white soldiers: steady buying across three candles"))
	}
	if c1.IsBearish() && c2.IsBearish() && c3.IsBearish() &&
		c2.Close < c1.Close && c3.Close < c2.Close &&
		c2.Open <= c1.Open*hi && c2.Open >= c1.Close*lo &&
		c3.Open <= c2.Open*hi && c3.Open >= c2.Close*lo {
		found = append(found, newPattern(series, i, ThreeBlackCrows, DirectionBearish, StrengthStrong,
			"Three black crows: steady selling across three candles"))
	}

	return found
}
