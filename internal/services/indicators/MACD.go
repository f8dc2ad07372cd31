package indicators

import "SmartMoneyAnalyzer/internal/numeric"

// MACDReading is the latest MACD state.
type MACDReading struct {
	MACD       float64 `json:"macd"`
	SignalLine float64 `json:"signal_line"`
	Histogram  float64 `json:"histogram"`
	Signal     string  `json:"signal"`
	Crossover  string  `json:"crossover"`
}

type MACDService struct {
	ema                *EMAService
	fast, slow, signal int
}

func NewMACDService(p Params, ema *EMAService) *MACDService {
	return &MACDService{
		ema:    ema,
		fast:   p.MACDFast,
		slow:   p.MACDSlow,
		signal: p.MACDSignal,
	}
}

func (s *MACDService) Calculate(prices []float64) Result[MACDReading] {
	if len(prices) < s.slow+s.signal {
		return InsufficientHistory(MACDReading{Signal: SignalNeutral, Crossover: CrossoverNone})
	}

	fast := s.ema.Calculate(prices, s.fast)
	slow := s.ema.Calculate(prices, s.slow)

	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fast[i] - slow[i]
	}
	signal := s.ema.Calculate(line, s.signal)

	n := len(prices)
	hist := line[n-1] - signal[n-1]
	prevHist := line[n-2] - signal[n-2]

	// Histogram direction confirms the side of the signal line
	trend := SignalNeutral
	if line[n-1] > signal[n-1] && prevHist < hist {
		trend = SignalBullish
	} else if line[n-1] < signal[n-1] && prevHist > hist {
		trend = SignalBearish
	}

	crossover := CrossoverNone
	if cross := s.ema.CheckCrossover(line, signal); cross.Crossed {
		crossover = CrossoverBullish
		if cross.Direction < 0 {
			crossover = CrossoverBearish
		}
	}

	return Sufficient(MACDReading{
		MACD:       numeric.Round(line[n-1], 6),
		SignalLine: numeric.Round(signal[n-1], 6),
		Histogram:  numeric.Round(hist, 6),
		Signal:     trend,
		Crossover:  crossover,
	})
}
