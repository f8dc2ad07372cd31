// Package price supplies OHLCV series to the analysis and backtest layers.
package price

import (
	"context"

	"SmartMoneyAnalyzer/internal/models"
)

// Provider returns up to limit of the most recent bars for symbol and
// timeframe, oldest first.
type Provider interface {
	GetSeries(ctx context.Context, symbol, timeframe string, limit int) (models.Series, error)
}
