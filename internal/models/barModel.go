package models

import (
	"sort"
	"time"
)

// Bar is one OHLCV observation.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Series is a time-ascending sequence of bars.
type Series []Bar

// Sorted returns a time-ascending copy. The receiver is never modified.
func (s Series) Sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Tail returns the last n bars, or the whole series if it is shorter.
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Last returns the most recent bar. It panics on an empty series.
func (s Series) Last() Bar {
	return s[len(s)-1]
}

func (s Series) Highs() []float64 { return s.column(func(b Bar) float64 { return b.High }) }
func (s Series) Lows() []float64 { return s.column(func(b Bar) float64 { return b.Low }) }
func (s Series) Closes() []float64 { return s.column(func(b Bar) float64 { return b.Close }) }
func (s Series) Volumes() []float64 { return s.column(func(b Bar) float64 { return b.Volume }) }

func (s Series) column(pick func(Bar) float64) []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = pick(b)
	}
	return out
}

// Body is the absolute open-to-close distance.
func (b Bar) Body() float64 {
	if b.Close > b.Open {
		return b.Close - b.Open
	}
	return b.Open - b.Close
}

// Range is the high-to-low distance.
func (b Bar) Range() float64 { return b.High - b.Low }

// UpperWick is the distance from the top of the body to the high.
func (b Bar) UpperWick() float64 {
	if b.Close > b.Open {
		return b.High - b.Close
	}
	return b.High - b.Open
}

// LowerWick is the distance from the bottom of the body to the low.
func (b Bar) LowerWick() float64 {
	if b.Close < b.Open {
		return b.Close - b.Low
	}
	return b.Open - b.Low
}

func (b Bar) IsBullish() bool { return b.Close > b.Open }
func (b Bar) IsBearish() bool { return b.Close < b.Open }
