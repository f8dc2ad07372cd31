// Package indicators computes the latest-bar state of a fixed battery of
// technical indicators. Every indicator returns a documented default when the
// series is too short, tagged through Result.
package indicators

import "SmartMoneyAnalyzer/internal/models"

type Engine struct {
	params Params

	ema        *EMAService
	rsi        *RSIService
	macd       *MACDService
	bbands     *BBandsService
	atr        *ATRService
	adx        *ADXService
	stochastic *StochasticService
}

func NewEngine(params Params) *Engine {
	ema := NewEMAService()
	return &Engine{
		params:     params,
		ema:        ema,
		rsi:        NewRSIService(params),
		macd:       NewMACDService(params, ema),
		bbands:     NewBBandsService(params),
		atr:        NewATRService(params),
		adx:        NewADXService(params),
		stochastic: NewStochasticService(params),
	}
}

// Calculate reads the whole battery for the last bar of series. The series
// must already be time-ascending.
func (e *Engine) Calculate(series models.Series) Readings {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	return Readings{
		RSI:        e.rsi.Calculate(closes),
		MACD:       e.macd.Calculate(closes),
		Bollinger:  e.bbands.Calculate(closes),
		ATR:        e.atr.Calculate(highs, lows, closes),
		ADX:        e.adx.Calculate(highs, lows, closes),
		Stochastic: e.stochastic.Calculate(highs, lows, closes),
		EMA:        e.EMASet(closes),
		SMA:        e.SMASet(closes),
		Momentum:   e.Momentum(closes),
		OBV:        e.OBV(closes, volumes),
		VWAP:       e.VWAP(highs, lows, closes, volumes),
		WilliamsR:  e.WilliamsR(highs, lows, closes),
		CCI:        e.CCI(highs, lows, closes),
	}
}

// SMA returns the trailing simple average of closes and whether enough
// history existed.
func (e *Engine) SMA(closes []float64, period int) (float64, bool) {
	if period < 1 || len(closes) < period {
		return 0, false
	}
	return last(sma(closes, period)), true
}

// Params returns the settings the engine was built with.
func (e *Engine) Params() Params { return e.params }
