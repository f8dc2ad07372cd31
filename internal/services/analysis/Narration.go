package analysis

import (
	"fmt"
	"math"
	"strings"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
	"SmartMoneyAnalyzer/internal/services/indicators"
	"SmartMoneyAnalyzer/internal/services/smc"
)

// GenerateLiveNarration renders a Markdown summary of the latest state. The
// clock in the header comes from the last bar, so equal input gives equal text.
func (m *MarketAnalyzer) GenerateLiveNarration(symbol string, series models.Series) NarrationResult {
	if len(series) < m.params.NarrationMinBars {
		return emptyNarration(symbol, series)
	}

	bars := series.Sorted()
	last := bars.Last()
	price := last.Close
	change := price - bars[len(bars)-2].Close

	technical := m.indicators.Calculate(bars)
	zones := m.smc.Analyze(bars)
	structure := m.marketStructure(bars)
	prediction := m.predict(bars, technical, structure)

	rsi := technical.RSI.Value().Value
	macd := technical.MACD.Value()

	var b strings.Builder
	fmt.Fprintf(&b, "**%s Live Analysis** (Updated: %s)\n\n", symbol, last.Timestamp.UTC().Format("15:04:05 UTC"))
	arrow := "↓"
	if change > 0 {
		arrow = "↑"
	}
	fmt.Fprintf(&b, "**Current Price:** %.5f (%s %.5f, %.1f pips)\n\n", price, arrow, math.Abs(change), numeric.Pips(math.Abs(change)*10000))

	b.WriteString("**What's Happening:**\n")
	switch structure.Trend {
	case TrendBullish:
		b.WriteString("- Price is in a BULLISH structure (Higher Highs + Higher Lows)\n")
	case TrendBearish:
		b.WriteString("- Price is in a BEARISH structure (Lower Highs + Lower Lows)\n")
	default:
		b.WriteString("- Price is RANGING between key levels\n")
	}

	ip := m.params.Indicators
	switch {
	case rsi > ip.RSIOverbought:
		fmt.Fprintf(&b, "- RSI at %.1f: OVERBOUGHT (potential pullback)\n", rsi)
	case rsi < ip.RSIOversold:
		fmt.Fprintf(&b, "- RSI at %.1f: OVERSOLD (potential bounce)\n", rsi)
	default:
		fmt.Fprintf(&b, "- RSI at %.1f: neutral momentum\n", rsi)
	}

	if macd.Histogram > 0 {
		b.WriteString("- MACD histogram positive, bullish momentum building\n")
	} else {
		b.WriteString("- MACD histogram negative, bearish pressure\n")
	}

	if technical.Bollinger.IsSufficient() {
		width := technical.Bollinger.Value().Width
		switch {
		case width < m.params.BollingerSqueeze:
			fmt.Fprintf(&b, "- Bollinger Bands squeezing (%.2f%% wide), expect a volatility breakout\n", width)
		case width > m.params.BollingerExpansion:
			fmt.Fprintf(&b, "- Bollinger Bands expanding (%.2f%% wide), volatility is elevated\n", width)
		}
	}

	b.WriteString("\n**Smart Money Activity:**\n")
	b.WriteString(smartMoneyLines(zones))

	b.WriteString("\n**What We're Watching:**\n")
	if n := len(structure.SwingHighs); n > 0 {
		fmt.Fprintf(&b, "- Resistance at %.5f\n", structure.SwingHighs[n-1].Price)
	}
	if n := len(structure.SwingLows); n > 0 {
		fmt.Fprintf(&b, "- Support at %.5f\n", structure.SwingLows[n-1].Price)
	}
	if z, ok := nearestZone(zones, price, true); ok {
		fmt.Fprintf(&b, "- Nearest bullish zone: %s at %.5f\n", z.Type, z.Price)
	}
	if z, ok := nearestZone(zones, price, false); ok {
		fmt.Fprintf(&b, "- Nearest bearish zone: %s at %.5f\n", z.Type, z.Price)
	}

	b.WriteString("\n**Prediction (Next 4-8 hours):**\n")
	if prediction.Direction != Unknown {
		s := prediction.Scenarios
		fmt.Fprintf(&b, "- BULLISH: %.1f%% probability → %s\n", s.Bullish.Probability, s.Bullish.Description)
		fmt.Fprintf(&b, "- NEUTRAL: %.1f%% probability → %s\n", s.Neutral.Probability, s.Neutral.Description)
		fmt.Fprintf(&b, "- BEARISH: %.1f%% probability → %s\n", s.Bearish.Probability, s.Bearish.Description)
	} else {
		b.WriteString("- Not enough history for a projection\n")
	}

	return NarrationResult{
		Symbol:       symbol,
		Narration:    b.String(),
		CurrentPrice: numeric.Price(price),
		PriceChange:  numeric.Price(change),
		Structure:    structure,
		TechnicalSummary: TechnicalSummary{
			RSI:           rsi,
			MACDSignal:    macd.Signal,
			MACDHistogram: macd.Histogram,
			Trend:         structure.Trend,
		},
		Prediction: prediction,
		Timestamp:  last.Timestamp,
	}
}

func smartMoneyLines(zones smc.Structure) string {
	var b strings.Builder
	if n := len(zones.OrderBlocks); n > 0 {
		ob := zones.OrderBlocks[n-1]
		fmt.Fprintf(&b, "- Key Order Block at %.5f (%s, %s)\n", ob.Price, ob.Type, ob.Status)
	}
	if n := len(zones.FairValueGaps); n > 0 {
		fvg := zones.FairValueGaps[n-1]
		fmt.Fprintf(&b, "- Fair Value Gap between %.5f and %.5f (%s, %s)\n", fvg.Bottom, fvg.Top, fvg.Type, fvg.Status)
	}
	if zones.Sweep != nil {
		fmt.Fprintf(&b, "- %s\n", zones.Sweep.Description)
	}
	if b.Len() == 0 {
		return "- No institutional footprint in the recent bars\n"
	}
	return b.String()
}

// nearestZone finds the closest bullish zone at or below price, or the
// closest bearish zone at or above it.
func nearestZone(zones smc.Structure, price float64, bullish bool) (smc.Zone, bool) {
	var best smc.Zone
	found := false
	for _, group := range [][]smc.Zone{zones.OrderBlocks, zones.FairValueGaps, zones.SupplyDemand} {
		for _, z := range group {
			if z.IsBullish() != bullish || z.Status == smc.StatusBroken {
				continue
			}
			if bullish && z.Price > price || !bullish && z.Price < price {
				continue
			}
			if !found || math.Abs(price-z.Price) < math.Abs(price-best.Price) {
				best, found = z, true
			}
		}
	}
	return best, found
}

func emptyNarration(symbol string, series models.Series) NarrationResult {
	result := NarrationResult{
		Symbol:     symbol,
		Narration:  fmt.Sprintf("**%s** - Waiting for market data...", symbol),
		Structure:  unknownStructure(),
		Prediction: unknownPrediction(),
		TechnicalSummary: TechnicalSummary{
			RSI:        50,
			MACDSignal: indicators.SignalNeutral,
			Trend:      Unknown,
		},
	}
	if len(series) > 0 {
		result.Timestamp = series.Sorted().Last().Timestamp
	}
	return result
}
