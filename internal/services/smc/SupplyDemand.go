package smc

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// SupplyDemandZones finds tight consolidations that price left impulsively.
func (a *Analyzer) SupplyDemandZones(series models.Series) []Zone {
	zones := []Zone{}
	n := len(series)
	if n < a.params.MinBars {
		return zones
	}

	p := a.params
	closePrice := series.Last().Close
	for i := p.ZoneStart; i < n-p.ZoneLookahead; i++ {
		if i-p.ZoneWindow+1 < 0 {
			continue
		}
		window := series[i-p.ZoneWindow+1 : i+1]

		top, bottom := window[0].High, window[0].Low
		bodies := 0.0
		for _, b := range window {
			if b.High > top {
				top = b.High
			}
			if b.Low < bottom {
				bottom = b.Low
			}
			bodies += b.Body()
		}
		width := top - bottom
		avgBody := bodies / float64(len(window))
		if width >= p.ZoneConsolidation*avgBody || width <= 0 {
			continue
		}

		move := series[i+p.ZoneLookahead].Close - series[i].Close
		zone := Zone{
			Top:       numeric.Price(top),
			Bottom:    numeric.Price(bottom),
			Price:     numeric.Price((top + bottom) / 2),
			Index:     i,
			Timestamp: series[i].Timestamp,
			Strength:  StrengthModerate,
			Status:    StatusFresh,
		}

		switch {
		case move >= p.ZoneBreakout*width:
			zone.Type = DemandZone
			zone.Description = "Demand: consolidation that broke out upward"
			if move >= p.ZoneStrong*width {
				zone.Strength = StrengthStrong
			}
			if closePrice < bottom {
				zone.Status = StatusBroken
			}
		case move <= -p.ZoneBreakout*width:
			zone.Type = SupplyZone
			zone.Description = "Supply: consolidation that broke out downward"
			if -move >= p.ZoneStrong*width {
				zone.Strength = StrengthStrong
			}
			if closePrice > top {
				zone.Status = StatusBroken
			}
		default:
			continue
		}
		zones = append(zones, zone)
	}

	return lastN(zones, p.MaxZones)
}
