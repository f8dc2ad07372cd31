// Package numeric holds the rounding and descriptive statistics shared by the
// analysis and backtest packages.
package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// Output precisions.
const (
	PricePlaces   int32 = 5
	PercentPlaces int32 = 2
	PipPlaces     int32 = 1
)

// Round rounds v half away from zero to the given number of decimal places.
// NaN and infinities are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Price rounds to price precision.
func Price(v float64) float64 { return Round(v, PricePlaces) }

// Percent rounds to percentage/ratio precision.
func Percent(v float64) float64 { return Round(v, PercentPlaces) }

// Pips rounds to pip precision.
func Pips(v float64) float64 { return Round(v, PipPlaces) }

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the n-1 standard deviation, or 0 with fewer than two values.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(sumSquares(values) / float64(len(values)-1))
}

// PopulationStd returns the n standard deviation, or 0 for an empty slice.
func PopulationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(sumSquares(values) / float64(len(values)))
}

func sumSquares(values []float64) float64 {
	mean := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		out = math.Max(out, v)
	}
	return out
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		out = math.Min(out, v)
	}
	return out
}
