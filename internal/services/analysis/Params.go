package analysis

import (
	"SmartMoneyAnalyzer/internal/services/indicators"
	"SmartMoneyAnalyzer/internal/services/patterns"
	"SmartMoneyAnalyzer/internal/services/smc"

	"github.com/creasty/defaults"
)

// Weights are the confluence points each factor contributes.
type Weights struct {
	RSI        int `yaml:"rsi" default:"15"`
	MACD       int `yaml:"macd" default:"20"`
	Structure  int `yaml:"structure" default:"25"`
	OrderBlock int `yaml:"order_block" default:"20"`
	FVG        int `yaml:"fvg" default:"15"`
	Sweep      int `yaml:"sweep" default:"25"`
	Pattern    int `yaml:"pattern" default:"15"`

	// Only this many of the most recent order blocks, gaps and patterns vote.
	RecentLimit int `yaml:"recent_limit" default:"3" validate:"min=1"`
}

// Grades maps a winning score and total factor count to a letter.
type Grades struct {
	MinScore int `yaml:"min_score" default:"30"`

	SScore   int `yaml:"s_score" default:"80"`
	SFactors int `yaml:"s_factors" default:"6"`
	AScore   int `yaml:"a_score" default:"65"`
	AFactors int `yaml:"a_factors" default:"5"`
	BScore   int `yaml:"b_score" default:"50"`
	BFactors int `yaml:"b_factors" default:"4"`
	CScore   int `yaml:"c_score" default:"35"`
	CFactors int `yaml:"c_factors" default:"3"`
	DScore   int `yaml:"d_score" default:"20"`
}

// Grade returns S through E. It never decreases as score or factors grow.
func (g Grades) Grade(score, factors int) string {
	switch {
	case score >= g.SScore && factors >= g.SFactors:
		return "S"
	case score >= g.AScore && factors >= g.AFactors:
		return "A"
	case score >= g.BScore && factors >= g.BFactors:
		return "B"
	case score >= g.CScore && factors >= g.CFactors:
		return "C"
	case score >= g.DScore:
		return "D"
	}
	return "E"
}

// Params configures the whole analysis pipeline.
type Params struct {
	MinBars           int `yaml:"min_bars" default:"50" validate:"min=20"`
	NarrationMinBars  int `yaml:"narration_min_bars" default:"10" validate:"min=2"`
	PredictionMinBars int `yaml:"prediction_min_bars" default:"20" validate:"min=2"`

	SwingWindow     int     `yaml:"swing_window" default:"5" validate:"min=1"`
	SwingLimit      int     `yaml:"swing_limit" default:"5" validate:"min=2"`
	CHoCHWindow     int     `yaml:"choch_window" default:"10" validate:"min=2"`
	CHoCHMultiplier float64 `yaml:"choch_multiplier" default:"2"`
	StrengthPeriod  int     `yaml:"strength_period" default:"20" validate:"min=1"`

	HighVolatility   float64 `yaml:"high_volatility" default:"2"`
	MediumVolatility float64 `yaml:"medium_volatility" default:"1"`
	TrendingADX      float64 `yaml:"trending_adx" default:"25"`

	StopATR       float64 `yaml:"stop_atr" default:"2" validate:"gt=0"`
	TargetATR     float64 `yaml:"target_atr" default:"3" validate:"gt=0"`
	MaxConfidence float64 `yaml:"max_confidence" default:"0.95" validate:"gt=0,lte=1"`

	MedianATR   float64 `yaml:"median_atr" default:"1.5"`
	BoundATR    float64 `yaml:"bound_atr" default:"2.5"`
	ScenarioATR float64 `yaml:"scenario_atr" default:"2"`

	BollingerSqueeze   float64 `yaml:"bollinger_squeeze" default:"1"`
	BollingerExpansion float64 `yaml:"bollinger_expansion" default:"4"`

	Indicators indicators.Params `yaml:"indicators"`
	Patterns   patterns.Params   `yaml:"patterns"`
	SMC        smc.Params        `yaml:"smc"`
	Weights    Weights           `yaml:"weights"`
	Grades     Grades            `yaml:"grades"`
}

// DefaultParams returns the standard pipeline settings.
func DefaultParams() Params {
	var p Params
	defaults.MustSet(&p)
	return p
}
