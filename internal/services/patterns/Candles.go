package patterns

import (
	"SmartMoneyAnalyzer/internal/models"
)

func (d *Detector) singleCandle(series models.Series) []Pattern {
	var found []Pattern
	n := len(series)
	for i := n - d.params.SingleLookback; i < n; i++ {
		if i < 0 {
			continue
		}
		found = append(found, d.checkCandle(series, i)...)
	}
	return found
}

func (d *Detector) checkCandle(series models.Series, i int) []Pattern {
	bar := series[i]
	total := bar.Range()
	if total <= 0 {
		return nil
	}

	p := d.params
	body := bar.Body()
	upper := bar.UpperWick()
	lower := bar.LowerWick()
	bodyRatio := body / total

	var found []Pattern

	// Long lower wick
	if lower > p.WickBodyRatio*body && upper < p.OppositeWickRatio*body {
		strength := StrengthModerate
		if lower > p.StrongWickBodyRatio*body {
			strength = StrengthStrong
		}
		if bar.IsBullish() {
			found = append(found, newPattern(series, i, Hammer, DirectionBullish, strength,
				"Hammer: long lower wick shows buyers rejected lower prices"))
		} else {
			found = append(found, newPattern(series, i, HangingMan, DirectionBearish, strength,
				"Hanging man: long lower wick after the move warns of selling pressure"))
		}
	}

	// Long upper wick
	if upper > p.WickBodyRatio*body && lower < p.OppositeWickRatio*body {
		strength := StrengthModerate
		if upper > p.StrongWickBodyRatio*body {
			strength = StrengthStrong
		}
		if bar.IsBearish() {
			found = append(found, newPattern(series, i, ShootingStar, DirectionBearish, strength,
				"Shooting star: sellers rejected the highs"))
		} else {
			found = append(found, newPattern(series, i, InvertedHammer, DirectionBullish, strength,
				"Inverted hammer: buyers probed higher"))
		}
	}

	if bodyRatio < p.DojiBodyRatio && upper > 0 && lower > 0 {
		found = append(found, newPattern(series, i, Doji, DirectionNeutral, StrengthModerate,
			"Doji: indecision between buyers and sellers"))
	}

	if bodyRatio > p.MarubozuBodyRatio && upper < p.MarubozuWickRatio*body && lower < p.MarubozuWickRatio*body {
		found = append(found, newPattern(series, i, Marubozu, directionOf(bar), StrengthStrong,
			"Marubozu: full-body candle with one side in control"))
	}

	return found
}
