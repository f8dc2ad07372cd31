package handlers

import (
	"context"

	"SmartMoneyAnalyzer/internal/operations/price"

	"github.com/rs/zerolog"
)

type PriceHandler struct {
	recorder *price.PriceRecorder
	log      zerolog.Logger
}

func NewPriceHandler(recorder *price.PriceRecorder, log zerolog.Logger) *PriceHandler {
	return &PriceHandler{
		recorder: recorder,
		log:      log,
	}
}

// Ingest backfills every symbol and, when follow is set, keeps recording new
// candles until ctx ends. A failed symbol does not stop the others.
func (h *PriceHandler) Ingest(ctx context.Context, symbols []string, timeframe string, days int, follow bool) (int64, error) {
	var total int64
	var firstErr error

	for _, symbol := range symbols {
		stored, err := h.recorder.Backfill(ctx, symbol, timeframe, days)
		if err != nil {
			h.log.Error().Err(err).Str("symbol", symbol).Str("timeframe", timeframe).Msg("backfill failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += stored
	}

	if firstErr != nil || !follow {
		return total, firstErr
	}
	return total, h.recorder.Follow(ctx, symbols, timeframe)
}
