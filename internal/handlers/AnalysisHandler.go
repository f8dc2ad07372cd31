package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/operations/price"
	"SmartMoneyAnalyzer/internal/services/analysis"

	"github.com/rs/zerolog"
)

type AnalysisHandler struct {
	analyzer *analysis.MarketAnalyzer
	provider price.Provider
	signals  SignalStore
	metrics  Metrics
	log      zerolog.Logger
}

// NewAnalysisHandler wires the analyzer to a provider. A nil signals store
// disables persistence.
func NewAnalysisHandler(
	analyzer *analysis.MarketAnalyzer,
	provider price.Provider,
	signals SignalStore,
	metrics Metrics,
	log zerolog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		provider: provider,
		signals:  signals,
		metrics:  metrics,
		log:      log,
	}
}

// Analyze fetches the series and runs the full analysis. Signals are stored
// when persist is set; a failed write is logged and the result still returned.
func (h *AnalysisHandler) Analyze(ctx context.Context, symbol, timeframe string, limit int, persist bool) (analysis.AnalysisResult, error) {
	series, err := h.provider.GetSeries(ctx, symbol, timeframe, limit)
	if err != nil {
		return analysis.AnalysisResult{}, fmt.Errorf("load %s %s series: %w", symbol, timeframe, err)
	}

	result := h.analyzer.AnalyzeMarket(symbol, series)
	h.metrics.RecordAnalysis(symbol)

	for _, signal := range result.Signals {
		h.metrics.RecordSignal(symbol, signal.Direction, signal.Grade)
		h.log.Info().
			Str("symbol", symbol).
			Str("direction", signal.Direction).
			Str("grade", signal.Grade).
			Int("score", signal.Score).
			Float64("entry", signal.EntryPrice).
			Msg("confluence signal")

		if persist {
			h.storeSignal(ctx, signal, timeframe)
		}
	}

	h.log.Debug().
		Str("symbol", symbol).
		Str("timeframe", timeframe).
		Int("bars", len(series)).
		Int("signals", len(result.Signals)).
		Msg("analysis complete")
	return result, nil
}

func (h *AnalysisHandler) Narrate(ctx context.Context, symbol, timeframe string, limit int) (analysis.NarrationResult, error) {
	series, err := h.provider.GetSeries(ctx, symbol, timeframe, limit)
	if err != nil {
		return analysis.NarrationResult{}, fmt.Errorf("load %s %s series: %w", symbol, timeframe, err)
	}
	return h.analyzer.GenerateLiveNarration(symbol, series), nil
}

// Watch analyzes every symbol once per interval until ctx ends.
func (h *AnalysisHandler) Watch(ctx context.Context, symbols []string, timeframe string, limit int, every time.Duration, persist bool, emit func(analysis.AnalysisResult)) {
	var wg sync.WaitGroup

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			h.watchSymbol(ctx, symbol, timeframe, limit, every, persist, emit)
		}(symbol)
	}

	wg.Wait()
}

func (h *AnalysisHandler) watchSymbol(ctx context.Context, symbol, timeframe string, limit int, every time.Duration, persist bool, emit func(analysis.AnalysisResult)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := h.Analyze(ctx, symbol, timeframe, limit, persist)
			if err != nil {
				h.log.Error().Err(err).Str("symbol", symbol).Msg("analysis failed")
				continue
			}
			if emit != nil {
				emit(result)
			}
		}
	}
}

func (h *AnalysisHandler) storeSignal(ctx context.Context, signal analysis.Signal, timeframe string) {
	if h.signals == nil {
		return
	}
	record := signalRecord(signal, timeframe)
	if err := h.signals.Create(ctx, &record); err != nil {
		h.metrics.RecordPersistenceError(EntitySignal)
		h.log.Error().Err(err).Str("symbol", signal.Symbol).Str("grade", signal.Grade).Msg("failed to save signal")
	}
}

func signalRecord(signal analysis.Signal, timeframe string) models.SignalRecord {
	factors := make([]string, len(signal.Contributors))
	for i, f := range signal.Contributors {
		factors[i] = f.Factor
	}

	return models.SignalRecord{
		Symbol:     signal.Symbol,
		Timeframe:  timeframe,
		Direction:  signal.Direction,
		Grade:      signal.Grade,
		Score:      signal.Score,
		Confidence: signal.Confidence,
		EntryPrice: signal.EntryPrice,
		StopLoss:   signal.StopLoss,
		TakeProfit: signal.TakeProfit,
		RiskReward: signal.RiskReward,
		Factors:    strings.Join(factors, "; "),
		Reasoning:  signal.Reasoning,
		SignalTime: signal.Timestamp,
	}
}
