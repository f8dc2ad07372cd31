package patterns

import (
	"time"

	"github.com/creasty/defaults"
)

// Pattern types.
const (
	Hammer             = "hammer"
	HangingMan         = "hanging_man"
	ShootingStar       = "shooting_star"
	InvertedHammer     = "inverted_hammer"
	Doji               = "doji"
	Marubozu           = "marubozu"
	BullishEngulfing   = "bullish_engulfing"
	BearishEngulfing   = "bearish_engulfing"
	BullishHarami      = "bullish_harami"
	BearishHarami      = "bearish_harami"
	TweezerTop         = "tweezer_top"
	TweezerBottom      = "tweezer_bottom"
	MorningStar        = "morning_star"
	EveningStar        = "evening_star"
	ThreeWhiteSoldiers = "three_white_soldiers"
	ThreeBlackCrows    = "three_black_crows"
	Range              = "range"
	SymmetricTriangle  = "triangle_symmetric"
	AscendingTriangle  = "triangle_ascending"
	DescendingTriangle = "triangle_descending"
)

const (
	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
	DirectionNeutral = "neutral"

	StrengthModerate = "moderate"
	StrengthStrong   = "strong"
)

// Pattern is one detected shape. Index points into the analysed series.
type Pattern struct {
	Type        string    `json:"type"`
	Index       int       `json:"index"`
	Price       float64   `json:"price"`
	Timestamp   time.Time `json:"timestamp"`
	Direction   string    `json:"direction"`
	Strength    string    `json:"strength"`
	Description string    `json:"description"`

	Resistance *float64 `json:"resistance,omitempty"`
	Support    *float64 `json:"support,omitempty"`
}

// Params holds the body/wick ratios and windows the detector uses.
type Params struct {
	MinBars int `yaml:"min_bars" default:"10" validate:"min=3"`

	SingleLookback int `yaml:"single_lookback" default:"5" validate:"min=1"`
	DoubleLookback int `yaml:"double_lookback" default:"4" validate:"min=1"`
	TripleLookback int `yaml:"triple_lookback" default:"3" validate:"min=1"`
	ChartWindow    int `yaml:"chart_window" default:"30" validate:"min=11"`

	WickBodyRatio       float64 `yaml:"wick_body_ratio" default:"2"`
	StrongWickBodyRatio float64 `yaml:"strong_wick_body_ratio" default:"3"`
	OppositeWickRatio   float64 `yaml:"opposite_wick_ratio" default:"0.5"`
	DojiBodyRatio       float64 `yaml:"doji_body_ratio" default:"0.1"`
	MarubozuBodyRatio   float64 `yaml:"marubozu_body_ratio" default:"0.8"`
	MarubozuWickRatio   float64 `yaml:"marubozu_wick_ratio" default:"0.05"`

	StrongEngulfRatio float64 `yaml:"strong_engulf_ratio" default:"1.5"`
	HaramiBodyRatio   float64 `yaml:"harami_body_ratio" default:"0.5"`
	TweezerTolerance  float64 `yaml:"tweezer_tolerance" default:"0.1"`

	StarBodyRatio     float64 `yaml:"star_body_ratio" default:"0.3"`
	SoldiersTolerance float64 `yaml:"soldiers_tolerance" default:"0.02"`

	RangeTolerance float64 `yaml:"range_tolerance" default:"0.002"`
	RangeTouches   int     `yaml:"range_touches" default:"2" validate:"min=1"`
	SwingWindow    int     `yaml:"swing_window" default:"5" validate:"min=1"`
	TriangleSwings int     `yaml:"triangle_swings" default:"3" validate:"min=2"`
	TriangleFlat   float64 `yaml:"triangle_flat" default:"0.3"`
}

// DefaultParams returns the standard detector settings.
func DefaultParams() Params {
	var p Params
	defaults.MustSet(&p)
	return p
}
