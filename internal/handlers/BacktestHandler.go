package handlers

import (
	"context"
	"encoding/json"
	"time"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/operations/backtest"

	"github.com/rs/zerolog"
)

type BacktestHandler struct {
	backtester *backtest.Backtester
	runs       RunStore
	metrics    Metrics
	log        zerolog.Logger
}

// NewBacktestHandler wires a backtester. A nil runs store disables persistence.
func NewBacktestHandler(backtester *backtest.Backtester, runs RunStore, metrics Metrics, log zerolog.Logger) *BacktestHandler {
	return &BacktestHandler{
		backtester: backtester,
		runs:       runs,
		metrics:    metrics,
		log:        log,
	}
}

func (h *BacktestHandler) Run(ctx context.Context, symbol, strategyID string, capital float64, persist bool) (backtest.BacktestResult, error) {
	name := h.strategyName(strategyID)
	started := time.Now()
	result, err := h.backtester.RunBacktest(ctx, symbol, strategyID, capital)
	if err != nil {
		return backtest.BacktestResult{}, err
	}
	h.metrics.RecordBacktest(symbol, time.Since(started))

	h.log.Info().
		Str("symbol", symbol).
		Str("strategy", strategyID).
		Str("strategy_name", name).
		Int("trades", result.TotalTrades).
		Float64("return", result.TotalReturn).
		Float64("sharpe", result.SharpeRatio).
		Msg("backtest complete")

	if persist {
		h.storeRun(ctx, result)
	}
	return result, nil
}

func (h *BacktestHandler) RunMultiple(ctx context.Context, symbol, strategyID string, iterations int, persist bool) (backtest.MultiBacktestResult, error) {
	name := h.strategyName(strategyID)
	started := time.Now()
	result, err := h.backtester.RunMultipleBacktests(ctx, symbol, strategyID, iterations)
	if err != nil {
		return backtest.MultiBacktestResult{}, err
	}
	h.metrics.RecordBacktest(symbol, time.Since(started))

	h.log.Info().
		Str("symbol", symbol).
		Str("strategy", strategyID).
		Str("strategy_name", name).
		Int("iterations", result.Iterations).
		Float64("consistency", result.Summary.ConsistencyScore).
		Msg("multi-run backtest complete")

	if persist {
		for _, run := range result.IndividualResults {
			h.storeRun(ctx, run.BacktestResult)
		}
	}
	return result, nil
}

// strategyName labels strategyID from the catalog. Unknown ids still run the
// same signal generator.
func (h *BacktestHandler) strategyName(strategyID string) string {
	strategy, ok := backtest.LookupStrategy(strategyID)
	if !ok {
		h.log.Warn().Str("strategy", strategyID).Msg("strategy not in catalog")
	}
	return strategy.Name
}

func (h *BacktestHandler) storeRun(ctx context.Context, result backtest.BacktestResult) {
	if h.runs == nil {
		return
	}
	run, err := backtestRun(result)
	if err == nil {
		err = h.runs.Save(ctx, &run)
	}
	if err != nil {
		h.metrics.RecordPersistenceError(EntityBacktest)
		h.log.Error().Err(err).Str("symbol", result.Symbol).Msg("failed to save backtest run")
		return
	}
	h.log.Debug().Str("run_id", run.RunID).Int("trades", len(run.Trades)).Msg("saved backtest run")
}

func backtestRun(result backtest.BacktestResult) (models.BacktestRun, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return models.BacktestRun{}, err
	}

	trades := make([]models.TradeRecord, len(result.Trades))
	for i, t := range result.Trades {
		trades[i] = models.TradeRecord{
			Symbol:          result.Symbol,
			Side:            t.Direction,
			Grade:           t.Grade,
			Size:            t.Size,
			EntryPrice:      t.EntryPrice,
			ExitPrice:       t.ExitPrice,
			StopLossPrice:   t.StopLoss,
			TakeProfitPrice: t.TakeProfit,
			PnL:             t.PnL,
			Pips:            t.Pips,
			ExitReason:      t.ExitReason,
			OpenTime:        t.EntryTime,
			CloseTime:       t.ExitTime,
			Status:          t.Status,
		}
	}

	return models.BacktestRun{
		Symbol:         result.Symbol,
		Strategy:       result.Strategy,
		InitialCapital: result.InitialCapital,
		FinalCapital:   result.FinalCapital,
		TotalReturn:    result.TotalReturn,
		TotalTrades:    result.TotalTrades,
		WinningTrades:  result.WinningTrades,
		LosingTrades:   result.LosingTrades,
		WinRate:        result.WinRate,
		ProfitFactor:   result.ProfitFactor,
		SharpeRatio:    result.SharpeRatio,
		MaxDrawdown:    result.MaxDrawdown,
		TotalPips:      result.TotalPips,
		ResultJSON:     string(payload),
		Trades:         trades,
	}, nil
}
