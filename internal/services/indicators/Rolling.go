package indicators

import (
	"math"

	"github.com/markcheno/go-talib"
)

// All windows are trailing and end at the current index. Positions before the
// first full window are NaN, and so is any window that contains a NaN.

func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// rollingStd uses the n-1 denominator.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		subset := values[i-window+1 : i+1]
		if isConstant(subset) {
			out[i] = 0
			continue
		}
		mean := 0.0
		for _, v := range subset {
			mean += v
		}
		mean /= float64(window)
		ss := 0.0
		for _, v := range subset {
			ss += (v - mean) * (v - mean)
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// sma, rollingMax and rollingMin delegate to talib for raw price columns,
// which never contain NaN.
func sma(values []float64, period int) []float64 {
	if len(values) < period {
		return nanSlice(len(values))
	}
	return maskWarmup(talib.Sma(values, period), period)
}

func rollingMax(values []float64, period int) []float64 {
	if len(values) < period {
		return nanSlice(len(values))
	}
	return maskWarmup(talib.Max(values, period), period)
}

func rollingMin(values []float64, period int) []float64 {
	if len(values) < period {
		return nanSlice(len(values))
	}
	return maskWarmup(talib.Min(values, period), period)
}

func maskWarmup(out []float64, period int) []float64 {
	for i := 0; i < period-1 && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}

func trueRange(highs, lows, closes []float64) []float64 {
	tr := make([]float64, len(closes))
	for i := range closes {
		tr[i] = highs[i] - lows[i]
		if i == 0 {
			continue
		}
		tr[i] = math.Max(tr[i], math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
	}
	return tr
}

// isConstant reports whether every value equals the first. Dispersion over a
// constant window is exactly zero rather than rounding noise.
func isConstant(values []float64) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func last(values []float64) float64 {
	return values[len(values)-1]
}

// orDefault replaces NaN or infinite values.
func orDefault(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
