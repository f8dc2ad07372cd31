package price

import (
	"context"
	"fmt"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/rs/zerolog"
)

// CandleFetcher pulls candles from the exchange as storable rows.
type CandleFetcher interface {
	FetchPrices(ctx context.Context, symbol, timeframe string, days int, now time.Time) ([]models.Price, error)
	LatestPrices(ctx context.Context, symbol, timeframe string, limit int) ([]models.Price, error)
}

// PriceWriter is the write side of the price repository.
type PriceWriter interface {
	CreateBatch(ctx context.Context, prices []models.Price) (int64, error)
	GetLatestPriceByTimeFrame(ctx context.Context, symbol, timeFrame string) (*models.Price, error)
}

// PriceRecorder copies exchange candles into the price store.
type PriceRecorder struct {
	fetcher CandleFetcher
	store   PriceWriter
	log     zerolog.Logger
	now     func() time.Time
}

func NewPriceRecorder(fetcher CandleFetcher, store PriceWriter, log zerolog.Logger) *PriceRecorder {
	return &PriceRecorder{
		fetcher: fetcher,
		store:   store,
		log:     log,
		now:     time.Now,
	}
}

// Backfill stores the last days of candles and reports how many rows were new.
// When the store already holds recent candles only the missing days are fetched.
func (r *PriceRecorder) Backfill(ctx context.Context, symbol, timeframe string, days int) (int64, error) {
	now := r.now()
	latest, err := r.store.GetLatestPriceByTimeFrame(ctx, symbol, timeframe)
	if err != nil {
		return 0, fmt.Errorf("load latest %s %s price: %w", symbol, timeframe, err)
	}
	if latest != nil {
		if resumed := resumeDays(latest.OpenTime, now, days); resumed < days {
			r.log.Debug().Str("symbol", symbol).Time("latest", latest.OpenTime).Int("days", resumed).Msg("resuming backfill")
			days = resumed
		}
	}

	prices, err := r.fetcher.FetchPrices(ctx, symbol, timeframe, days, now)
	if err != nil {
		return 0, err
	}

	stored, err := r.store.CreateBatch(ctx, prices)
	if err != nil {
		return 0, fmt.Errorf("store %s %s prices: %w", symbol, timeframe, err)
	}

	r.log.Info().
		Str("symbol", symbol).
		Str("timeframe", timeframe).
		Int("fetched", len(prices)).
		Int64("stored", stored).
		Msg("backfill complete")
	return stored, nil
}

// resumeDays is the whole number of days covering latest..now, capped at days.
func resumeDays(latest, now time.Time, days int) int {
	since := now.Sub(latest)
	if since <= 0 {
		return 1
	}
	needed := int((since + 24*time.Hour - 1) / (24 * time.Hour))
	if needed < days {
		return needed
	}
	return days
}

// Follow records the latest candles for every symbol once per bar until ctx ends.
func (r *PriceRecorder) Follow(ctx context.Context, symbols []string, timeframe string) error {
	interval, ok := TimeframeDuration(timeframe)
	if !ok {
		return fmt.Errorf("unsupported timeframe %q", timeframe)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info().Str("timeframe", timeframe).Strs("symbols", symbols).Msg("starting price recording")

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Str("timeframe", timeframe).Msg("stopping price recording")
			return nil
		case <-ticker.C:
			r.recordLatest(ctx, symbols, timeframe)
		}
	}
}

func (r *PriceRecorder) recordLatest(ctx context.Context, symbols []string, timeframe string) {
	for _, symbol := range symbols {
		// The newest kline is still forming; the one before it is final.
		prices, err := r.fetcher.LatestPrices(ctx, symbol, timeframe, 2)
		if err != nil {
			r.log.Error().Err(err).Str("symbol", symbol).Str("timeframe", timeframe).Msg("failed to get klines")
			continue
		}
		if len(prices) > 1 {
			prices = prices[:len(prices)-1]
		}

		if _, err := r.store.CreateBatch(ctx, prices); err != nil {
			r.log.Error().Err(err).Str("symbol", symbol).Str("timeframe", timeframe).Msg("failed to save prices")
			continue
		}
		if len(prices) > 0 {
			r.log.Debug().Str("symbol", symbol).Float64("close", prices[len(prices)-1].Close).Msg("recorded price")
		}
	}
}
