package smc

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// LiquidityZones marks resting liquidity above recent swing highs and below
// recent swing lows, plus evenly spaced round-number levels across the close range.
func (a *Analyzer) LiquidityZones(series models.Series) []Zone {
	zones := []Zone{}
	if len(series) < a.params.MinBars {
		return zones
	}

	p := a.params
	highs := series.Highs()
	lows := series.Lows()

	for _, i := range tailIdx(numeric.LocalMaxima(highs, p.SwingWindow), p.SwingLimit) {
		zones = append(zones, Zone{
			Type:        SellSideLiquidity,
			Price:       numeric.Price(highs[i]),
			Index:       i,
			Timestamp:   series[i].Timestamp,
			Strength:    StrengthModerate,
			Status:      StatusFresh,
			Description: "Stops resting above a swing high",
		})
	}
	for _, i := range tailIdx(numeric.LocalMinima(lows, p.SwingWindow), p.SwingLimit) {
		zones = append(zones, Zone{
			Type:        BuySideLiquidity,
			Price:       numeric.Price(lows[i]),
			Index:       i,
			Timestamp:   series[i].Timestamp,
			Strength:    StrengthModerate,
			Status:      StatusFresh,
			Description: "Stops resting below a swing low",
		})
	}

	return append(zones, a.psychologicalLevels(series)...)
}

func (a *Analyzer) psychologicalLevels(series models.Series) []Zone {
	closes := series.Closes()
	lo, hi := closes[0], closes[0]
	for _, c := range closes {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}

	count := a.params.PsychologicalCount
	step := (hi - lo) / float64(count-1)
	last := len(series) - 1

	var zones []Zone
	seen := make(map[float64]bool, count)
	for i := 0; i < count; i++ {
		level := lo + step*float64(i)
		places := int32(4)
		if level > 10 {
			places = 2
		}
		level = numeric.Round(level, places)
		if seen[level] {
			continue
		}
		seen[level] = true
		zones = append(zones, Zone{
			Type:        PsychologicalLevel,
			Price:       level,
			Index:       last,
			Timestamp:   series[last].Timestamp,
			Strength:    StrengthModerate,
			Status:      StatusFresh,
			Description: "Round-number level inside the traded range",
		})
	}
	return zones
}

// LiquiditySweep returns the first wick in the trailing window that ran
// beyond the body and closed back. The newest bar is still unconfirmed and is
// not scanned. Nil when nothing qualifies.
func (a *Analyzer) LiquiditySweep(series models.Series) *Sweep {
	n := len(series)
	if n < 10 {
		return nil
	}

	p := a.params
	avgRange := 0.0
	for _, b := range series {
		avgRange += b.Range()
	}
	avgRange /= float64(n)

	for i := n - p.SweepWindow; i < n-1; i++ {
		b := series[i]
		body := b.Body()
		if upper := b.UpperWick(); upper > p.SweepWickBody*body && upper > p.SweepWickRange*avgRange {
			return &Sweep{
				Type:        BearishLiquiditySweep,
				Direction:   DirectionBearish,
				Price:       numeric.Price(b.High),
				Index:       i,
				Timestamp:   b.Timestamp,
				Description: "Buy-side liquidity swept above the high, expect downside",
			}
		}
		if lower := b.LowerWick(); lower > p.SweepWickBody*body && lower > p.SweepWickRange*avgRange {
			return &Sweep{
				Type:        BullishLiquiditySweep,
				Direction:   DirectionBullish,
				Price:       numeric.Price(b.Low),
				Index:       i,
				Timestamp:   b.Timestamp,
				Description: "Sell-side liquidity swept below the low, expect upside",
			}
		}
	}
	return nil
}

func tailIdx(idx []int, n int) []int {
	if len(idx) > n {
		return idx[len(idx)-n:]
	}
	return idx
}
