package smc

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

// session hours are UTC and half-open. London and New York overlap on purpose.
var sessions = []struct {
	name       string
	start, end int
}{
	{"asian", 0, 8},
	{"london", 8, 16},
	{"new_york", 13, 22},
}

// Sessions reports the range of every session with at least one bar. A zero
// timestamp anywhere yields no sessions.
func (a *Analyzer) Sessions(series models.Series) []SessionRange {
	ranges := []SessionRange{}
	if len(series) < 10 {
		return ranges
	}
	for _, b := range series {
		if b.Timestamp.IsZero() {
			return ranges
		}
	}

	for _, s := range sessions {
		r := SessionRange{Session: s.name, High: math.Inf(-1), Low: math.Inf(1)}
		for _, b := range series {
			hour := b.Timestamp.UTC().Hour()
			if hour < s.start || hour >= s.end {
				continue
			}
			r.High = math.Max(r.High, b.High)
			r.Low = math.Min(r.Low, b.Low)
			r.Bars++
		}
		if r.Bars == 0 {
			continue
		}
		r.Range = numeric.Price(r.High - r.Low)
		r.High = numeric.Price(r.High)
		r.Low = numeric.Price(r.Low)
		ranges = append(ranges, r)
	}
	return ranges
}
