package indicators

// EMAService provides Exponential Moving Average calculations
type EMAService struct{}

// CrossSignal represents a crossover of a fast line over a slow line
type CrossSignal struct {
	Crossed   bool // Whether cross occurred on the latest bar
	Direction int  // 1 (bullish), -1 (bearish)
}

// NewEMAService creates a new EMA service instance
func NewEMAService() *EMAService {
	return &EMAService{}
}

// Calculate computes the EMA for the entire series. The first value seeds the
// average, so every position is defined.
func (s *EMAService) Calculate(prices []float64, period int) []float64 {
	if !s.validateInputs(prices, period) {
		return nil
	}

	ema := make([]float64, len(prices))
	multiplier := s.getMultiplier(period)

	ema[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		ema[i] = s.calculatePoint(prices[i], ema[i-1], multiplier)
	}

	return ema
}

// Latest returns the EMA at the last bar, or false when history is shorter than the period.
func (s *EMAService) Latest(prices []float64, period int) (float64, bool) {
	if len(prices) < period {
		return 0, false
	}
	ema := s.Calculate(prices, period)
	if ema == nil {
		return 0, false
	}
	return ema[len(ema)-1], true
}

// CheckCrossover detects a crossover between the last two points
func (s *EMAService) CheckCrossover(fast, slow []float64) *CrossSignal {
	if len(fast) < 2 || len(slow) < 2 {
		return &CrossSignal{Crossed: false}
	}

	currFast := fast[len(fast)-1]
	prevFast := fast[len(fast)-2]
	currSlow := slow[len(slow)-1]
	prevSlow := slow[len(slow)-2]

	bullishCross := prevFast <= prevSlow && currFast > currSlow
	bearishCross := prevFast >= prevSlow && currFast < currSlow

	if !bullishCross && !bearishCross {
		return &CrossSignal{Crossed: false}
	}

	direction := 1
	if bearishCross {
		direction = -1
	}

	return &CrossSignal{
		Crossed:   true,
		Direction: direction,
	}
}

// Private helper methods

func (s *EMAService) validateInputs(prices []float64, period int) bool {
	return len(prices) > 0 && period > 0
}

func (s *EMAService) getMultiplier(period int) float64 {
	return 2.0 / float64(period+1)
}

func (s *EMAService) calculatePoint(price, prevEMA, multiplier float64) float64 {
	return (price-prevEMA)*multiplier + prevEMA
}
