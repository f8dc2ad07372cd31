package indicators

import (
	"SmartMoneyAnalyzer/internal/numeric"
)

// OBV accumulates volume by close direction and calls the trend against its
// own trailing mean.
func (e *Engine) OBV(closes, volumes []float64) Result[Reading] {
	n := len(closes)
	if n < 2 {
		return InsufficientHistory(Reading{Signal: SignalNeutral})
	}

	obv := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv[i] = obv[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			obv[i] = obv[i-1] - volumes[i]
		default:
			obv[i] = obv[i-1]
		}
	}

	current := obv[n-1]
	signal := SignalNeutral
	if period := e.params.OBVTrendPeriod; n > period {
		mean := last(rollingMean(obv, period))
		if current > mean {
			signal = SignalBullish
		} else if current < mean {
			signal = SignalBearish
		}
	}

	return Sufficient(Reading{Value: numeric.Percent(current), Signal: signal})
}

// VWAP is cumulative over the whole series and falls back to the close when
// no volume traded.
func (e *Engine) VWAP(highs, lows, closes, volumes []float64) Result[Reading] {
	if len(closes) == 0 {
		return InsufficientHistory(Reading{Signal: SignalBelowVWAP})
	}

	var pv, vol float64
	for i := range closes {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		pv += typical * volumes[i]
		vol += volumes[i]
	}

	price := last(closes)
	vwap := price
	if vol != 0 {
		vwap = pv / vol
	}

	signal := SignalBelowVWAP
	if price > vwap {
		signal = SignalAboveVWAP
	}
	return Sufficient(Reading{Value: numeric.Price(vwap), Signal: signal})
}
