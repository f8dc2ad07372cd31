package indicators

// Categorical reading values.
const (
	SignalNeutral    = "neutral"
	SignalBullish    = "bullish"
	SignalBearish    = "bearish"
	SignalOverbought = "overbought"
	SignalOversold   = "oversold"

	SignalAboveVWAP = "above_vwap"
	SignalBelowVWAP = "below_vwap"

	DivergenceNone    = "none"
	DivergenceBullish = "bullish_divergence"
	DivergenceBearish = "bearish_divergence"

	CrossoverNone    = "none"
	CrossoverBullish = "bullish_crossover"
	CrossoverBearish = "bearish_crossover"

	TrendWeak       = "weak"
	TrendModerate   = "moderate"
	TrendStrong     = "strong"
	TrendVeryStrong = "very_strong"
)

// Readings is the latest-bar state of the whole indicator battery.
type Readings struct {
	RSI        Result[RSIReading]       `json:"rsi"`
	MACD       Result[MACDReading]      `json:"macd"`
	Bollinger  Result[BollingerReading] `json:"bollinger_bands"`
	ATR        Result[ATRReading]       `json:"atr"`
	ADX        Result[ADXReading]       `json:"adx"`
	Stochastic Result[StochReading]     `json:"stochastic"`
	EMA        Result[MovingAverageSet] `json:"ema"`
	SMA        Result[MovingAverageSet] `json:"sma"`
	Momentum   Result[Reading]          `json:"momentum"`
	OBV        Result[Reading]          `json:"obv"`
	VWAP       Result[Reading]          `json:"vwap"`
	WilliamsR  Result[Reading]          `json:"williams_r"`
	CCI        Result[Reading]          `json:"cci"`
}

// Reading is the plain value plus signal shape shared by simple indicators.
type Reading struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}
