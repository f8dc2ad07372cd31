package analysis

import (
	"fmt"
	"math"
	"strings"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
	"SmartMoneyAnalyzer/internal/services/indicators"
	"SmartMoneyAnalyzer/internal/services/patterns"
	"SmartMoneyAnalyzer/internal/services/smc"
)

var (
	bullishPatterns = map[string]bool{
		patterns.Hammer:             true,
		patterns.BullishEngulfing:   true,
		patterns.MorningStar:        true,
		patterns.ThreeWhiteSoldiers: true,
	}
	bearishPatterns = map[string]bool{
		patterns.HangingMan:       true,
		patterns.BearishEngulfing: true,
		patterns.EveningStar:      true,
		patterns.ThreeBlackCrows:  true,
	}
)

// confluenceFactors collects every directional vote in a fixed order.
func (m *MarketAnalyzer) confluenceFactors(technical indicators.Readings, zones smc.Structure, found []patterns.Pattern, structure StructureState) []ConfluenceFactor {
	w := m.params.Weights
	factors := []ConfluenceFactor{}
	add := func(label, direction string, weight int) {
		factors = append(factors, ConfluenceFactor{Factor: label, Direction: direction, Weight: weight})
	}

	rsi := technical.RSI.Value()
	switch {
	case rsi.Value < m.params.Indicators.RSIOversold:
		add("RSI Oversold", TrendBullish, w.RSI)
	case rsi.Value > m.params.Indicators.RSIOverbought:
		add("RSI Overbought", TrendBearish, w.RSI)
	}

	macd := technical.MACD.Value()
	switch {
	case macd.Histogram > 0 && macd.Signal == indicators.SignalBullish:
		add("MACD Bullish", TrendBullish, w.MACD)
	case macd.Histogram < 0 && macd.Signal == indicators.SignalBearish:
		add("MACD Bearish", TrendBearish, w.MACD)
	}

	switch structure.Trend {
	case TrendBullish:
		add("Bullish Structure", TrendBullish, w.Structure)
	case TrendBearish:
		add("Bearish Structure", TrendBearish, w.Structure)
	}

	for _, ob := range recent(zones.OrderBlocks, w.RecentLimit) {
		if ob.IsBullish() {
			add(fmt.Sprintf("Bullish Order Block at %.5f", ob.Price), TrendBullish, w.OrderBlock)
		} else {
			add(fmt.Sprintf("Bearish Order Block at %.5f", ob.Price), TrendBearish, w.OrderBlock)
		}
	}

	for _, fvg := range recent(zones.FairValueGaps, w.RecentLimit) {
		if fvg.IsBullish() {
			add("Bullish FVG zone", TrendBullish, w.FVG)
		} else {
			add("Bearish FVG zone", TrendBearish, w.FVG)
		}
	}

	if zones.Sweep != nil {
		add("Liquidity Sweep Detected", zones.Sweep.Direction, w.Sweep)
	}

	for _, pattern := range recent(found, w.RecentLimit) {
		switch {
		case bullishPatterns[pattern.Type]:
			add("Bullish Pattern: "+pattern.Type, TrendBullish, w.Pattern)
		case bearishPatterns[pattern.Type]:
			add("Bearish Pattern: "+pattern.Type, TrendBearish, w.Pattern)
		}
	}

	return factors
}

// generateSignals emits at most one signal for the dominant direction.
func (m *MarketAnalyzer) generateSignals(symbol string, bars models.Series, technical indicators.Readings, factors []ConfluenceFactor, structure StructureState, regime Regime) []Signal {
	signals := []Signal{}

	bullish, bearish := 0, 0
	for _, f := range factors {
		switch f.Direction {
		case TrendBullish:
			bullish += f.Weight
		case TrendBearish:
			bearish += f.Weight
		}
	}

	p := m.params
	var direction string
	var score int
	switch {
	case bullish > bearish && bullish >= p.Grades.MinScore:
		direction, score = DirectionLong, bullish
	case bearish > bullish && bearish >= p.Grades.MinScore:
		direction, score = DirectionShort, bearish
	default:
		return signals
	}

	grade := p.Grades.Grade(score, len(factors))
	price := bars.Last().Close
	stop, target := m.Bracket(direction, price, technical.ATR.Value().Value)

	risk := math.Abs(price - stop)
	reward := math.Abs(target - price)
	riskReward := 0.0
	if risk > 0 {
		riskReward = reward / risk
	}

	return append(signals, Signal{
		Symbol:       symbol,
		SignalType:   SignalTypeConfluence,
		Direction:    direction,
		Grade:        grade,
		Confidence:   numeric.Percent(math.Min(float64(score)/100, p.MaxConfidence)),
		Score:        score,
		EntryPrice:   numeric.Price(price),
		StopLoss:     numeric.Price(stop),
		TakeProfit:   numeric.Price(target),
		RiskReward:   numeric.Percent(riskReward),
		Contributors: factors,
		Reasoning:    reasoning(direction, grade, factors, structure, regime),
		Timestamp:    bars.Last().Timestamp,
	})
}

// Bracket places the ATR-based stop and target around entry on the side
// matching direction.
func (m *MarketAnalyzer) Bracket(direction string, entry, atr float64) (stop, target float64) {
	stopDistance := m.params.StopATR * atr
	targetDistance := m.params.TargetATR * atr
	if direction == DirectionShort {
		return entry + stopDistance, entry - targetDistance
	}
	return entry - stopDistance, entry + targetDistance
}

func reasoning(direction, grade string, factors []ConfluenceFactor, structure StructureState, regime Regime) string {
	action, side := "BUY", TrendBullish
	if direction == DirectionShort {
		action, side = "SELL", TrendBearish
	}

	var supporting []string
	for _, f := range factors {
		if f.Direction == side {
			supporting = append(supporting, f.Factor)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s-Grade %s Signal**\n\n", grade, action)
	fmt.Fprintf(&b, "**Market Structure:** %s (%s bias)\n\n", structure.Structure, strings.ToUpper(structure.Trend))
	fmt.Fprintf(&b, "**Regime:** %s\n\n", regime.Description)
	fmt.Fprintf(&b, "**Confluence Factors (%d):**\n", len(supporting))
	for _, f := range supporting {
		fmt.Fprintf(&b, "  - %s\n", f)
	}

	switch grade {
	case "S", "A":
		b.WriteString("\n**Recommendation:** Strong setup with high confluence. Consider full position size.")
	case "B":
		b.WriteString("\n**Recommendation:** Good setup. Consider standard position size.")
	case "C":
		b.WriteString("\n**Recommendation:** Moderate setup. Consider reduced position size or wait for better entry.")
	default:
		b.WriteString("\n**Recommendation:** Weak setup. Skip or monitor only.")
	}
	return b.String()
}

func recent[T any](items []T, n int) []T {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
