package indicators

import "SmartMoneyAnalyzer/internal/numeric"

// RSIReading is the latest RSI state.
type RSIReading struct {
	Value      float64 `json:"value"`
	Signal     string  `json:"signal"`
	Divergence string  `json:"divergence"`
}

type RSIService struct {
	period               int
	overbought, oversold float64
	divergenceLookback   int
}

func NewRSIService(p Params) *RSIService {
	return &RSIService{
		period:             p.RSIPeriod,
		overbought:         p.RSIOverbought,
		oversold:           p.RSIOversold,
		divergenceLookback: p.RSIDivergenceLookback,
	}
}

// Series returns the RSI for every bar using simple rolling means of gains and losses.
func (s *RSIService) Series(prices []float64) []float64 {
	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := rollingMean(gains, s.period)
	avgLoss := rollingMean(losses, s.period)

	rsi := nanSlice(len(prices))
	for i := s.period - 1; i < len(prices); i++ {
		rsi[i] = rsiPoint(avgGain[i], avgLoss[i])
	}
	return rsi
}

func rsiPoint(gain, loss float64) float64 {
	switch {
	case loss == 0 && gain == 0:
		return 50
	case loss == 0:
		return 100
	}
	rs := gain / loss
	return 100 - (100 / (1 + rs))
}

func (s *RSIService) Calculate(prices []float64) Result[RSIReading] {
	if len(prices) < s.period+1 {
		return InsufficientHistory(RSIReading{Value: 50, Signal: SignalNeutral, Divergence: DivergenceNone})
	}

	rsi := s.Series(prices)
	value := orDefault(last(rsi), 50)

	signal := SignalNeutral
	if value > s.overbought {
		signal = SignalOverbought
	} else if value < s.oversold {
		signal = SignalOversold
	}

	return Sufficient(RSIReading{
		Value:      numeric.Percent(value),
		Signal:     signal,
		Divergence: s.divergence(prices, rsi),
	})
}

// divergence compares the price and RSI moves across the lookback.
func (s *RSIService) divergence(prices, rsi []float64) string {
	n := len(prices)
	if n < 2*s.divergenceLookback {
		return DivergenceNone
	}

	from := n - s.divergenceLookback
	priceDelta := prices[n-1] - prices[from]
	rsiDelta := rsi[n-1] - rsi[from]

	if priceDelta > 0 && rsiDelta < 0 {
		return DivergenceBearish
	} else if priceDelta < 0 && rsiDelta > 0 {
		return DivergenceBullish
	}
	return DivergenceNone
}
