package analysis

import (
	"time"

	"SmartMoneyAnalyzer/internal/services/indicators"
	"SmartMoneyAnalyzer/internal/services/patterns"
	"SmartMoneyAnalyzer/internal/services/smc"
)

const (
	Unknown = "unknown"

	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendRanging = "ranging"

	DirectionLong  = "long"
	DirectionShort = "short"

	SignalTypeConfluence = "confluence"
)

// AnalysisResult is the full snapshot produced for one symbol and series.
type AnalysisResult struct {
	Symbol         string              `json:"symbol"`
	CurrentPrice   float64             `json:"current_price"`
	PriceChange    float64             `json:"price_change"`
	PriceChangePct float64             `json:"price_change_pct"`
	Technical      indicators.Readings `json:"technical"`
	SMC            smc.Structure       `json:"smc"`
	Patterns       []patterns.Pattern  `json:"patterns"`
	Structure      StructureState      `json:"market_structure"`
	Regime         Regime              `json:"regime"`
	Signals        []Signal            `json:"signals"`
	Prediction     Prediction          `json:"prediction"`
	Timestamp      time.Time           `json:"timestamp"`
}

// SwingPoint is a local extreme of the high or low column.
type SwingPoint struct {
	Index     int       `json:"index"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// StructureState is the swing-based read of the trend.
type StructureState struct {
	Trend         string       `json:"trend"`
	Structure     string       `json:"structure"`
	SwingHighs    []SwingPoint `json:"swing_highs"`
	SwingLows     []SwingPoint `json:"swing_lows"`
	BOSDetected   bool         `json:"bos_detected"`
	CHoCHDetected bool         `json:"choch_detected"`
	Strength      float64      `json:"strength"`
}

// Regime crosses trend strength with volatility.
type Regime struct {
	Type        string  `json:"type"`
	Volatility  string  `json:"volatility"`
	ADX         float64 `json:"adx"`
	ATRPercent  float64 `json:"atr_percent"`
	Description string  `json:"description"`
}

// ConfluenceFactor is one weighted vote for a direction.
type ConfluenceFactor struct {
	Factor    string `json:"factor"`
	Direction string `json:"direction"`
	Weight    int    `json:"weight"`
}

type Signal struct {
	Symbol       string             `json:"symbol"`
	SignalType   string             `json:"signal_type"`
	Direction    string             `json:"direction"`
	Grade        string             `json:"grade"`
	Confidence   float64            `json:"confidence"`
	Score        int                `json:"score"`
	EntryPrice   float64            `json:"entry_price"`
	StopLoss     float64            `json:"stop_loss"`
	TakeProfit   float64            `json:"take_profit"`
	RiskReward   float64            `json:"risk_reward"`
	Contributors []ConfluenceFactor `json:"contributors"`
	Reasoning    string             `json:"reasoning"`
	Timestamp    time.Time          `json:"timestamp"`
}

type Scenario struct {
	Probability float64 `json:"probability"`
	Target      float64 `json:"target"`
	Description string  `json:"description"`
}

type Scenarios struct {
	Bullish Scenario `json:"bullish"`
	Neutral Scenario `json:"neutral"`
	Bearish Scenario `json:"bearish"`
}

// Prediction projects three price scenarios a few hours ahead.
type Prediction struct {
	Direction    string    `json:"direction"`
	MedianTarget float64   `json:"median_target"`
	UpperBound   float64   `json:"upper_bound"`
	LowerBound   float64   `json:"lower_bound"`
	Scenarios    Scenarios `json:"scenarios"`
	Timeframe    string    `json:"timeframe"`
	Confidence   float64   `json:"confidence"`
}

type TechnicalSummary struct {
	RSI           float64 `json:"rsi"`
	MACDSignal    string  `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	Trend         string  `json:"trend"`
}

// NarrationResult is the human-readable rendering of a shorter analysis.
type NarrationResult struct {
	Symbol           string           `json:"symbol"`
	Narration        string           `json:"narration"`
	CurrentPrice     float64          `json:"current_price"`
	PriceChange      float64          `json:"price_change"`
	Structure        StructureState   `json:"structure"`
	TechnicalSummary TechnicalSummary `json:"technical_summary"`
	Prediction       Prediction       `json:"prediction"`
	Timestamp        time.Time        `json:"timestamp"`
}

func unknownStructure() StructureState {
	return StructureState{
		Trend:      Unknown,
		Structure:  Unknown,
		SwingHighs: []SwingPoint{},
		SwingLows:  []SwingPoint{},
	}
}

func unknownRegime() Regime {
	return Regime{Type: Unknown, Volatility: Unknown, Description: "Insufficient data"}
}

func unknownPrediction() Prediction {
	return Prediction{Direction: Unknown}
}
