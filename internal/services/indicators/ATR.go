package indicators

import "SmartMoneyAnalyzer/internal/numeric"

// ATRReading is the latest average true range, absolute and relative to price.
type ATRReading struct {
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type ATRService struct {
	period int
}

func NewATRService(p Params) *ATRService {
	return &ATRService{period: p.ATRPeriod}
}

// Series returns the rolling-mean ATR for every bar.
func (s *ATRService) Series(highs, lows, closes []float64) []float64 {
	return rollingMean(trueRange(highs, lows, closes), s.period)
}

func (s *ATRService) Calculate(highs, lows, closes []float64) Result[ATRReading] {
	if len(closes) < s.period+1 {
		return InsufficientHistory(ATRReading{})
	}

	atr := orDefault(last(s.Series(highs, lows, closes)), 0)
	price := last(closes)

	percent := 0.0
	if price != 0 {
		percent = atr / price * 100
	}

	return Sufficient(ATRReading{
		Value:   numeric.Round(atr, 6),
		Percent: numeric.Round(percent, 4),
	})
}
