package smc

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// FairValueGaps finds bars that leave untraded space against the prior bar.
// The following bar decides whether the gap was filled.
func (a *Analyzer) FairValueGaps(series models.Series) []Zone {
	gaps := []Zone{}
	n := len(series)
	if n < 5 {
		return gaps
	}

	for i := 1; i < n-1; i++ {
		prev, curr, next := series[i-1], series[i], series[i+1]

		var zone Zone
		switch {
		case curr.Low > prev.High:
			zone = Zone{
				Type:        BullishFVG,
				Top:         curr.Low,
				Bottom:      prev.High,
				Description: "Bullish imbalance left below price",
			}
			if next.Low <= prev.High {
				zone.Status = StatusFilled
			}
		case curr.High < prev.Low:
			zone = Zone{
				Type:        BearishFVG,
				Top:         prev.Low,
				Bottom:      curr.High,
				Description: "Bearish imbalance left above price",
			}
			if next.High >= prev.Low {
				zone.Status = StatusFilled
			}
		default:
			continue
		}

		if zone.Status == "" {
			zone.Status = StatusFresh
		}
		zone.GapSize = numeric.Price(zone.Top - zone.Bottom)
		zone.Price = numeric.Price((zone.Top + zone.Bottom) / 2)
		zone.Top = numeric.Price(zone.Top)
		zone.Bottom = numeric.Price(zone.Bottom)
		zone.Index = i
		zone.Timestamp = curr.Timestamp
		zone.Strength = StrengthModerate
		gaps = append(gaps, zone)
	}

	return lastN(gaps, a.params.MaxZones)
}
