package indicators

import (
	"fmt"

	"SmartMoneyAnalyzer/internal/numeric"
)

// MovingAverageSet holds one average per configured period. Periods longer
// than the history are null.
type MovingAverageSet struct {
	Values      map[string]*float64 `json:"values"`
	GoldenCross bool                `json:"golden_cross"`
	DeathCross  bool                `json:"death_cross"`
}

// Get returns the average for a period and whether it is defined.
func (m MovingAverageSet) Get(prefix string, period int) (float64, bool) {
	v := m.Values[maKey(prefix, period)]
	if v == nil {
		return 0, false
	}
	return *v, true
}

func maKey(prefix string, period int) string {
	return fmt.Sprintf("%s_%d", prefix, period)
}

// EMASet computes the EMA battery and the fast/slow cross flags.
func (e *Engine) EMASet(prices []float64) Result[MovingAverageSet] {
	set := MovingAverageSet{Values: make(map[string]*float64, len(e.params.EMAPeriods))}
	for _, period := range e.params.EMAPeriods {
		if v, ok := e.ema.Latest(prices, period); ok {
			rounded := numeric.Price(v)
			set.Values[maKey("ema", period)] = &rounded
		} else {
			set.Values[maKey("ema", period)] = nil
		}
	}

	fast, fastOK := e.ema.Latest(prices, e.params.CrossFast)
	slow, slowOK := e.ema.Latest(prices, e.params.CrossSlow)
	if !fastOK || !slowOK {
		return InsufficientHistory(set)
	}
	set.GoldenCross = fast > slow
	set.DeathCross = !set.GoldenCross

	return Sufficient(set)
}

// SMASet computes the SMA battery.
func (e *Engine) SMASet(prices []float64) Result[MovingAverageSet] {
	set := MovingAverageSet{Values: make(map[string]*float64, len(e.params.SMAPeriods))}
	complete := true
	for _, period := range e.params.SMAPeriods {
		if len(prices) < period || period < 1 {
			set.Values[maKey("sma", period)] = nil
			complete = false
			continue
		}
		rounded := numeric.Price(last(sma(prices, period)))
		set.Values[maKey("sma", period)] = &rounded
	}

	if !complete {
		return InsufficientHistory(set)
	}
	return Sufficient(set)
}
