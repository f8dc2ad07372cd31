// Package analysis combines indicators, patterns and smart-money zones into a
// market read, a graded confluence signal and a scenario projection.
package analysis

import (
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
	"SmartMoneyAnalyzer/internal/services/indicators"
	"SmartMoneyAnalyzer/internal/services/patterns"
	"SmartMoneyAnalyzer/internal/services/smc"
)

// MarketAnalyzer holds no per-call state and is safe for concurrent use.
type MarketAnalyzer struct {
	params Params

	indicators *indicators.Engine
	patterns   *patterns.Detector
	smc        *smc.Analyzer
}

func NewMarketAnalyzer(params Params) *MarketAnalyzer {
	return &MarketAnalyzer{
		params:     params,
		indicators: indicators.NewEngine(params.Indicators),
		patterns:   patterns.NewDetector(params.Patterns),
		smc:        smc.NewAnalyzer(params.SMC),
	}
}

// Params returns the settings the analyzer was built with.
func (m *MarketAnalyzer) Params() Params { return m.params }

// AnalyzeMarket runs the full pipeline on a private, time-sorted copy of
// series. Short input yields the unknown analysis rather than an error.
func (m *MarketAnalyzer) AnalyzeMarket(symbol string, series models.Series) AnalysisResult {
	if len(series) < m.params.MinBars {
		return m.emptyAnalysis(symbol, series)
	}

	bars := series.Sorted()

	// Leaf analyses
	technical := m.indicators.Calculate(bars)
	zones := m.smc.Analyze(bars)
	found := m.patterns.DetectAll(bars)

	structure := m.marketStructure(bars)
	regime := m.detectRegime(bars, technical)

	factors := m.confluenceFactors(technical, zones, found, structure)
	signals := m.generateSignals(symbol, bars, technical, factors, structure, regime)
	prediction := m.predict(bars, technical, structure)

	price := bars.Last().Close
	prev := bars[len(bars)-2].Close
	change := price - prev
	changePct := 0.0
	if prev != 0 {
		changePct = change / prev * 100
	}

	return AnalysisResult{
		Symbol:         symbol,
		CurrentPrice:   numeric.Price(price),
		PriceChange:    numeric.Price(change),
		PriceChangePct: numeric.Round(changePct, 4),
		Technical:      technical,
		SMC:            zones,
		Patterns:       found,
		Structure:      structure,
		Regime:         regime,
		Signals:        signals,
		Prediction:     prediction,
		Timestamp:      bars.Last().Timestamp,
	}
}

// emptyAnalysis keeps every field well formed: default readings, empty zone
// lists and unknown labels.
func (m *MarketAnalyzer) emptyAnalysis(symbol string, series models.Series) AnalysisResult {
	result := AnalysisResult{
		Symbol:     symbol,
		Technical:  m.indicators.Calculate(nil),
		SMC:        m.smc.Analyze(nil),
		Patterns:   []patterns.Pattern{},
		Structure:  unknownStructure(),
		Regime:     unknownRegime(),
		Signals:    []Signal{},
		Prediction: unknownPrediction(),
	}
	if len(series) > 0 {
		result.Timestamp = series.Sorted().Last().Timestamp
	}
	return result
}
