// Package smc detects smart-money-concept zones on a full price history.
// Every call recomputes from scratch; zones carry no identity across calls.
package smc

import "SmartMoneyAnalyzer/internal/models"

type Analyzer struct {
	params Params
}

func NewAnalyzer(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// Analyze runs every detector over series, which must be time-ascending.
func (a *Analyzer) Analyze(series models.Series) Structure {
	if len(series) < a.params.MinBars {
		return emptyStructure()
	}

	orderBlocks := a.OrderBlocks(series)

	return Structure{
		OrderBlocks:    orderBlocks,
		FairValueGaps:  a.FairValueGaps(series),
		LiquidityZones: a.LiquidityZones(series),
		SupplyDemand:   a.SupplyDemandZones(series),
		BreakerBlocks:  a.BreakerBlocks(series, orderBlocks),
		Sweep:          a.LiquiditySweep(series),
		Displacement:   a.Displacement(series),
		Sessions:       a.Sessions(series),
	}
}

func lastN(zones []Zone, n int) []Zone {
	if len(zones) > n {
		return zones[len(zones)-n:]
	}
	return zones
}
