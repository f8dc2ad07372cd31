package smc

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// OrderBlocks flags the last opposite candle before an impulsive candle.
func (a *Analyzer) OrderBlocks(series models.Series) []Zone {
	zones := []Zone{}
	n := len(series)
	if n < 10 {
		return zones
	}

	p := a.params
	closePrice := series.Last().Close
	for i := 3; i < n-1; i++ {
		curr, prev, next := series[i], series[i-1], series[i+1]
		avgBody := (curr.Body() + prev.Body()) / 2
		nextBody := next.Body()
		if nextBody <= p.OrderBlockImpulse*avgBody {
			continue
		}

		strength := StrengthModerate
		if nextBody > p.OrderBlockStrong*avgBody {
			strength = StrengthStrong
		}

		zone := Zone{
			High:      numeric.Price(curr.High),
			Low:       numeric.Price(curr.Low),
			Index:     i,
			Timestamp: curr.Timestamp,
			Strength:  strength,
			Status:    StatusFresh,
		}

		switch {
		case curr.IsBearish() && next.IsBullish():
			zone.Type = BullishOrderBlock
			zone.Price = numeric.Price(curr.Low)
			zone.Description = "Last bearish candle before a bullish impulse"
			if closePrice < curr.Low {
				zone.Status = StatusBroken
			}
		case curr.IsBullish() && next.IsBearish():
			zone.Type = BearishOrderBlock
			zone.Price = numeric.Price(curr.High)
			zone.Description = "Last bullish candle before a bearish impulse"
			if closePrice > curr.High {
				zone.Status = StatusBroken
			}
		default:
			continue
		}
		zones = append(zones, zone)
	}

	return lastN(zones, p.MaxZones)
}

// BreakerBlocks turns order blocks breached by the latest close into
// opposite-role zones.
func (a *Analyzer) BreakerBlocks(series models.Series, orderBlocks []Zone) []Zone {
	breakers := []Zone{}
	if len(series) == 0 {
		return breakers
	}

	closePrice := series.Last().Close
	for _, ob := range orderBlocks {
		breaker := ob
		breaker.Status = StatusFresh
		switch {
		case ob.Type == BullishOrderBlock && closePrice < ob.Low:
			breaker.Type = BearishBreaker
			breaker.Description = "Failed bullish order block now acting as resistance"
		case ob.Type == BearishOrderBlock && closePrice > ob.High:
			breaker.Type = BullishBreaker
			breaker.Description = "Failed bearish order block now acting as support"
		default:
			continue
		}
		breakers = append(breakers, breaker)
	}
	return breakers
}
