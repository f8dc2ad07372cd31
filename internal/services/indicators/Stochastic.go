package indicators

import "SmartMoneyAnalyzer/internal/numeric"

// StochReading is the latest %K/%D state.
type StochReading struct {
	K      float64 `json:"k"`
	D      float64 `json:"d"`
	Signal string  `json:"signal"`
}

type StochasticService struct {
	kPeriod, dPeriod     int
	overbought, oversold float64
}

func NewStochasticService(p Params) *StochasticService {
	return &StochasticService{
		kPeriod:    p.StochK,
		dPeriod:    p.StochD,
		overbought: p.StochOverbought,
		oversold:   p.StochOversold,
	}
}

func (s *StochasticService) Calculate(highs, lows, closes []float64) Result[StochReading] {
	if len(closes) < s.kPeriod {
		return InsufficientHistory(StochReading{K: 50, D: 50, Signal: SignalNeutral})
	}

	lowest := rollingMin(lows, s.kPeriod)
	highest := rollingMax(highs, s.kPeriod)

	k := nanSlice(len(closes))
	for i := s.kPeriod - 1; i < len(closes); i++ {
		// A zero range leaves %K undefined
		if spread := highest[i] - lowest[i]; spread != 0 {
			k[i] = 100 * (closes[i] - lowest[i]) / spread
		}
	}
	d := rollingMean(k, s.dPeriod)

	kValue := orDefault(last(k), 50)
	dValue := orDefault(last(d), 50)

	signal := SignalNeutral
	switch {
	case kValue > s.overbought && dValue > s.overbought:
		signal = SignalOverbought
	case kValue < s.oversold && dValue < s.oversold:
		signal = SignalOversold
	case kValue > dValue:
		signal = SignalBullish
	case kValue < dValue:
		signal = SignalBearish
	}

	return Sufficient(StochReading{
		K:      numeric.Percent(kValue),
		D:      numeric.Percent(dValue),
		Signal: signal,
	})
}
