// Package handlers runs the analysis, backtest and price operations for the
// CLI and records their side effects.
package handlers

import (
	"context"
	"time"

	"SmartMoneyAnalyzer/internal/models"
)

// Metrics is the part of the metrics recorder the handlers report to.
type Metrics interface {
	RecordAnalysis(symbol string)
	RecordSignal(symbol, direction, grade string)
	RecordBacktest(symbol string, elapsed time.Duration)
	RecordPersistenceError(entity string)
}

// SignalStore persists emitted signals.
type SignalStore interface {
	Create(ctx context.Context, signal *models.SignalRecord) error
}

// RunStore persists backtest runs with their trades.
type RunStore interface {
	Save(ctx context.Context, run *models.BacktestRun) error
}

// SignalHistory reads stored signals back.
type SignalHistory interface {
	FindRecent(ctx context.Context, symbol string, limit int) ([]models.SignalRecord, error)
}

// RunHistory reads stored backtest runs back.
type RunHistory interface {
	FindByRunID(ctx context.Context, runID string) (*models.BacktestRun, error)
}

// Persistence entities reported to Metrics.
const (
	EntitySignal   = "signal"
	EntityBacktest = "backtest_run"
)
