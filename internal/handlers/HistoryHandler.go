package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/rs/zerolog"
)

// ErrRunNotFound is returned when no stored run has the requested id.
var ErrRunNotFound = errors.New("backtest run not found")

type HistoryHandler struct {
	signals SignalHistory
	runs    RunHistory
	log     zerolog.Logger
}

func NewHistoryHandler(signals SignalHistory, runs RunHistory, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		signals: signals,
		runs:    runs,
		log:     log,
	}
}

// RecentSignals returns up to limit stored signals for symbol, newest first.
func (h *HistoryHandler) RecentSignals(ctx context.Context, symbol string, limit int) ([]models.SignalRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	signals, err := h.signals.FindRecent(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("load %s signals: %w", symbol, err)
	}
	h.log.Debug().Str("symbol", symbol).Int("signals", len(signals)).Msg("loaded signal history")
	return signals, nil
}

// Run returns a stored backtest run with its trades.
func (h *HistoryHandler) Run(ctx context.Context, runID string) (*models.BacktestRun, error) {
	run, err := h.runs.FindByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, nil
}
