package indicators

import (
	"math"

	"SmartMoneyAnalyzer/internal/numeric"

	"github.com/markcheno/go-talib"
)

// Momentum is the close-to-close change over the momentum period.
func (e *Engine) Momentum(closes []float64) Result[Reading] {
	period := e.params.MomentumPeriod
	if len(closes) < period+1 {
		return InsufficientHistory(Reading{Signal: SignalNeutral})
	}

	value := last(talib.Mom(closes, period))
	return Sufficient(Reading{Value: numeric.Price(value), Signal: signOf(value)})
}

// WilliamsR is bounded in [-100, 0].
func (e *Engine) WilliamsR(highs, lows, closes []float64) Result[Reading] {
	period := e.params.WilliamsPeriod
	if len(closes) < period {
		return InsufficientHistory(Reading{Value: -50, Signal: SignalNeutral})
	}

	highest := last(rollingMax(highs, period))
	lowest := last(rollingMin(lows, period))

	value := -50.0
	if spread := highest - lowest; spread != 0 {
		value = -100 * (highest - last(closes)) / spread
	}

	signal := SignalNeutral
	if value > e.params.WilliamsOverbought {
		signal = SignalOverbought
	} else if value < e.params.WilliamsOversold {
		signal = SignalOversold
	}
	return Sufficient(Reading{Value: numeric.Percent(value), Signal: signal})
}

// CCI uses the mean absolute deviation of the typical price. A zero deviation reads 0.
func (e *Engine) CCI(highs, lows, closes []float64) Result[Reading] {
	period := e.params.CCIPeriod
	n := len(closes)
	if n < period {
		return InsufficientHistory(Reading{Signal: SignalNeutral})
	}

	typical := make([]float64, n)
	for i := range closes {
		typical[i] = (highs[i] + lows[i] + closes[i]) / 3
	}

	window := typical[n-period:]
	mean := numeric.Mean(window)
	deviation := 0.0
	for _, tp := range window {
		deviation += math.Abs(tp - mean)
	}
	deviation /= float64(period)

	value := 0.0
	if deviation != 0 && !isConstant(window) {
		value = (typical[n-1] - mean) / (0.015 * deviation)
	}

	signal := SignalNeutral
	if value > e.params.CCIOverbought {
		signal = SignalOverbought
	} else if value < e.params.CCIOversold {
		signal = SignalOversold
	}
	return Sufficient(Reading{Value: numeric.Percent(value), Signal: signal})
}

func signOf(v float64) string {
	if v > 0 {
		return SignalBullish
	} else if v < 0 {
		return SignalBearish
	}
	return SignalNeutral
}
