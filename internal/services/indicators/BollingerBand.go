package indicators

import "SmartMoneyAnalyzer/internal/numeric"

// BollingerReading is the latest band state.
type BollingerReading struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Width    float64 `json:"width"`
	PercentB float64 `json:"percent_b"`
	Signal   string  `json:"signal"`
}

type BBandsService struct {
	period     int
	deviations float64
}

func NewBBandsService(p Params) *BBandsService {
	return &BBandsService{period: p.BollingerPeriod, deviations: p.BollingerStdDev}
}

func (s *BBandsService) Calculate(prices []float64) Result[BollingerReading] {
	if len(prices) == 0 {
		return InsufficientHistory(BollingerReading{PercentB: 50, Signal: SignalNeutral})
	}
	price := last(prices)
	if len(prices) < s.period {
		p := numeric.Price(price)
		return InsufficientHistory(BollingerReading{Upper: p, Middle: p, Lower: p, PercentB: 50, Signal: SignalNeutral})
	}

	middle := orDefault(last(sma(prices, s.period)), price)
	stdDev := orDefault(last(rollingStd(prices, s.period)), 0)

	upper := middle + s.deviations*stdDev
	lower := middle - s.deviations*stdDev

	width := 0.0
	if middle != 0 {
		width = (upper - lower) / middle * 100
	}

	percentB := 50.0
	if upper-lower > 0 {
		percentB = (price - lower) / (upper - lower) * 100
	}

	signal := SignalNeutral
	if price > upper {
		signal = SignalOverbought
	} else if price < lower {
		signal = SignalOversold
	}

	return Sufficient(BollingerReading{
		Upper:    numeric.Price(upper),
		Middle:   numeric.Price(middle),
		Lower:    numeric.Price(lower),
		Width:    numeric.Percent(width),
		PercentB: numeric.Percent(percentB),
		Signal:   signal,
	})
}
