package indicators

import (
	"math"

	"SmartMoneyAnalyzer/internal/numeric"
)

// ADXReading is the latest directional movement state.
type ADXReading struct {
	Value         float64 `json:"value"`
	PlusDI        float64 `json:"plus_di"`
	MinusDI       float64 `json:"minus_di"`
	TrendStrength string  `json:"trend_strength"`
}

type ADXService struct {
	period int
}

func NewADXService(p Params) *ADXService {
	return &ADXService{period: p.ADXPeriod}
}

func (s *ADXService) Calculate(highs, lows, closes []float64) Result[ADXReading] {
	fallback := ADXReading{Value: 25, PlusDI: 25, MinusDI: 25, TrendStrength: TrendWeak}
	n := len(closes)
	if n < 2*s.period {
		return InsufficientHistory(fallback)
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	atr := rollingMean(trueRange(highs, lows, closes), s.period)
	plusMean := rollingMean(plusDM, s.period)
	minusMean := rollingMean(minusDM, s.period)

	plusDI := nanSlice(n)
	minusDI := nanSlice(n)
	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || atr[i] == 0 {
			continue
		}
		plusDI[i] = 100 * plusMean[i] / atr[i]
		minusDI[i] = 100 * minusMean[i] / atr[i]

		sum := plusDI[i] + minusDI[i]
		if sum == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
	}
	adx := rollingMean(dx, s.period)

	value := orDefault(last(adx), fallback.Value)
	return Sufficient(ADXReading{
		Value:         numeric.Percent(value),
		PlusDI:        numeric.Percent(orDefault(last(plusDI), fallback.PlusDI)),
		MinusDI:       numeric.Percent(orDefault(last(minusDI), fallback.MinusDI)),
		TrendStrength: trendStrength(value),
	})
}

func trendStrength(adx float64) string {
	switch {
	case adx < 20:
		return TrendWeak
	case adx < 25:
		return TrendModerate
	case adx < 50:
		return TrendStrong
	}
	return TrendVeryStrong
}
