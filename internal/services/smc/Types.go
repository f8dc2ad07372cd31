package smc

import (
	"time"

	"github.com/creasty/defaults"
)

// Zone types.
const (
	BullishOrderBlock     = "bullish_order_block"
	BearishOrderBlock     = "bearish_order_block"
	BullishFVG            = "bullish_fvg"
	BearishFVG            = "bearish_fvg"
	SellSideLiquidity     = "sell_side_liquidity"
	BuySideLiquidity      = "buy_side_liquidity"
	PsychologicalLevel    = "psychological_level"
	DemandZone            = "demand"
	SupplyZone            = "supply"
	BullishBreaker        = "bullish_breaker"
	BearishBreaker        = "bearish_breaker"
	BullishLiquiditySweep = "bullish_sweep"
	BearishLiquiditySweep = "bearish_sweep"
)

const (
	StatusFresh  = "fresh"
	StatusFilled = "filled"
	StatusBroken = "broken"

	StrengthModerate = "moderate"
	StrengthStrong   = "strong"

	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
)

// Zone is a derived price area. Only the fields meaningful for its type are set.
type Zone struct {
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	High        float64   `json:"high,omitempty"`
	Low         float64   `json:"low,omitempty"`
	Top         float64   `json:"top,omitempty"`
	Bottom      float64   `json:"bottom,omitempty"`
	GapSize     float64   `json:"gap_size,omitempty"`
	Index       int       `json:"index"`
	Timestamp   time.Time `json:"timestamp"`
	Strength    string    `json:"strength"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

// IsBullish reports whether the zone supports price from below.
func (z Zone) IsBullish() bool {
	switch z.Type {
	case BullishOrderBlock, BullishFVG, DemandZone, BullishBreaker, BuySideLiquidity:
		return true
	}
	return false
}

// Sweep is a wick that ran liquidity and closed back.
type Sweep struct {
	Type        string    `json:"type"`
	Direction   string    `json:"direction"`
	Price       float64   `json:"price"`
	Index       int       `json:"index"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Displacement is an outsized body relative to the history average.
type Displacement struct {
	Direction   string    `json:"direction"`
	Multiplier  float64   `json:"multiplier"`
	Index       int       `json:"index"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// SessionRange is the high/low of one trading session's bars.
type SessionRange struct {
	Session string  `json:"session"`
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
	Range   float64 `json:"range"`
	Bars    int     `json:"bars"`
}

// Structure is the full smart-money snapshot of a series.
type Structure struct {
	OrderBlocks    []Zone         `json:"order_blocks"`
	FairValueGaps  []Zone         `json:"fair_value_gaps"`
	LiquidityZones []Zone         `json:"liquidity_zones"`
	SupplyDemand   []Zone         `json:"supply_demand_zones"`
	BreakerBlocks  []Zone         `json:"breaker_blocks"`
	Sweep          *Sweep         `json:"liquidity_sweep"`
	Displacement   []Displacement `json:"displacement"`
	Sessions       []SessionRange `json:"sessions"`
}

func emptyStructure() Structure {
	return Structure{
		OrderBlocks:    []Zone{},
		FairValueGaps:  []Zone{},
		LiquidityZones: []Zone{},
		SupplyDemand:   []Zone{},
		BreakerBlocks:  []Zone{},
		Displacement:   []Displacement{},
		Sessions:       []SessionRange{},
	}
}

// Params holds the zone detection thresholds.
type Params struct {
	MinBars  int `yaml:"min_bars" default:"20" validate:"min=10"`
	MaxZones int `yaml:"max_zones" default:"10" validate:"min=1"`

	OrderBlockImpulse float64 `yaml:"order_block_impulse" default:"1.5"`
	OrderBlockStrong  float64 `yaml:"order_block_strong" default:"2"`

	SwingWindow        int `yaml:"swing_window" default:"5" validate:"min=1"`
	SwingLimit         int `yaml:"swing_limit" default:"5" validate:"min=1"`
	PsychologicalCount int `yaml:"psychological_count" default:"11" validate:"min=2"`

	ZoneWindow        int     `yaml:"zone_window" default:"6" validate:"min=2"`
	ZoneStart         int     `yaml:"zone_start" default:"10"`
	ZoneConsolidation float64 `yaml:"zone_consolidation" default:"3"`
	ZoneBreakout      float64 `yaml:"zone_breakout" default:"1.5"`
	ZoneStrong        float64 `yaml:"zone_strong" default:"2"`
	ZoneLookahead     int     `yaml:"zone_lookahead" default:"3" validate:"min=1"`

	SweepWindow    int     `yaml:"sweep_window" default:"5" validate:"min=2"`
	SweepWickBody  float64 `yaml:"sweep_wick_body" default:"2"`
	SweepWickRange float64 `yaml:"sweep_wick_range" default:"0.5"`

	DisplacementWindow int     `yaml:"displacement_window" default:"5" validate:"min=1"`
	DisplacementRatio  float64 `yaml:"displacement_ratio" default:"2"`
}

// DefaultParams returns the standard zone settings.
func DefaultParams() Params {
	var p Params
	defaults.MustSet(&p)
	return p
}
