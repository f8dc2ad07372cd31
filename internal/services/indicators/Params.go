package indicators

import "github.com/creasty/defaults"

// Params holds every period and threshold the engine uses.
type Params struct {
	RSIPeriod             int     `yaml:"rsi_period" default:"14" validate:"min=2"`
	RSIOverbought         float64 `yaml:"rsi_overbought" default:"70"`
	RSIOversold           float64 `yaml:"rsi_oversold" default:"30"`
	RSIDivergenceLookback int     `yaml:"rsi_divergence_lookback" default:"10" validate:"min=2"`

	MACDFast   int `yaml:"macd_fast" default:"12" validate:"min=1"`
	MACDSlow   int `yaml:"macd_slow" default:"26" validate:"gtfield=MACDFast"`
	MACDSignal int `yaml:"macd_signal" default:"9" validate:"min=1"`

	BollingerPeriod int     `yaml:"bollinger_period" default:"20" validate:"min=2"`
	BollingerStdDev float64 `yaml:"bollinger_std_dev" default:"2" validate:"gt=0"`

	ATRPeriod int `yaml:"atr_period" default:"14" validate:"min=1"`
	ADXPeriod int `yaml:"adx_period" default:"14" validate:"min=1"`

	StochK          int     `yaml:"stoch_k" default:"14" validate:"min=1"`
	StochD          int     `yaml:"stoch_d" default:"3" validate:"min=1"`
	StochOverbought float64 `yaml:"stoch_overbought" default:"80"`
	StochOversold   float64 `yaml:"stoch_oversold" default:"20"`

	EMAPeriods  []int `yaml:"ema_periods" default:"[9,21,50,100,200]"`
	SMAPeriods  []int `yaml:"sma_periods" default:"[10,20,50,100,200]"`
	CrossFast   int   `yaml:"cross_fast" default:"50" validate:"min=1"`
	CrossSlow   int   `yaml:"cross_slow" default:"200" validate:"gtfield=CrossFast"`
	TrendPeriod int   `yaml:"trend_period" default:"20" validate:"min=1"`

	MomentumPeriod int `yaml:"momentum_period" default:"10" validate:"min=1"`
	OBVTrendPeriod int `yaml:"obv_trend_period" default:"10" validate:"min=1"`

	WilliamsPeriod     int     `yaml:"williams_period" default:"14" validate:"min=1"`
	WilliamsOverbought float64 `yaml:"williams_overbought" default:"-20"`
	WilliamsOversold   float64 `yaml:"williams_oversold" default:"-80"`

	CCIPeriod     int     `yaml:"cci_period" default:"20" validate:"min=1"`
	CCIOverbought float64 `yaml:"cci_overbought" default:"100"`
	CCIOversold   float64 `yaml:"cci_oversold" default:"-100"`
}

// DefaultParams returns the standard indicator battery settings.
func DefaultParams() Params {
	var p Params
	defaults.MustSet(&p)
	return p
}
