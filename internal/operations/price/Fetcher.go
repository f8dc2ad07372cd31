package price

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/rs/zerolog"
)

// KlineSource is the part of the exchange client the fetcher needs.
type KlineSource interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*futures.Kline, error)
	GetKlinesRange(ctx context.Context, symbol, interval string, startTime, endTime int64) ([]*futures.Kline, error)
}

// BinanceProvider reads candles straight from the futures klines endpoint.
type BinanceProvider struct {
	source KlineSource
	log    zerolog.Logger
}

func NewBinanceProvider(source KlineSource, log zerolog.Logger) *BinanceProvider {
	return &BinanceProvider{
		source: source,
		log:    log,
	}
}

func (p *BinanceProvider) GetSeries(ctx context.Context, symbol, timeframe string, limit int) (models.Series, error) {
	prices, err := p.LatestPrices(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}
	return models.PricesToSeries(prices).Sorted(), nil
}

// LatestPrices returns the last limit candles as storable rows.
func (p *BinanceProvider) LatestPrices(ctx context.Context, symbol, timeframe string, limit int) ([]models.Price, error) {
	klines, err := p.source.GetKlines(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s klines: %w", symbol, timeframe, err)
	}

	prices, err := toPrices(symbol, timeframe, klines)
	if err != nil {
		return nil, err
	}

	p.log.Debug().Str("symbol", symbol).Str("timeframe", timeframe).Int("bars", len(prices)).Msg("fetched klines")
	return prices, nil
}

// FetchPrices walks back the given number of days in pages the endpoint accepts.
func (p *BinanceProvider) FetchPrices(ctx context.Context, symbol, timeframe string, days int, now time.Time) ([]models.Price, error) {
	interval, ok := timeframeDurations[timeframe]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe %q", timeframe)
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	endTime := now.UTC()
	currentStart := endTime.AddDate(0, 0, -days)
	chunk := interval * 1000
	var allPrices []models.Price

	for currentStart.Before(endTime) {
		currentEnd := currentStart.Add(chunk)
		if currentEnd.After(endTime) {
			currentEnd = endTime
		}

		klines, err := p.source.GetKlinesRange(ctx, symbol, timeframe, currentStart.UnixMilli(), currentEnd.UnixMilli()-1)
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s klines from %s: %w", symbol, timeframe, currentStart.Format(time.RFC3339), err)
		}

		prices, err := toPrices(symbol, timeframe, klines)
		if err != nil {
			return nil, err
		}
		allPrices = append(allPrices, prices...)

		p.log.Info().
			Str("symbol", symbol).
			Str("timeframe", timeframe).
			Int("bars", len(prices)).
			Time("from", currentStart).
			Time("to", currentEnd).
			Msg("fetched kline page")

		currentStart = currentEnd
	}

	return allPrices, nil
}

var timeframeDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// TimeframeDuration reports the bar length of a supported timeframe.
func TimeframeDuration(timeframe string) (time.Duration, bool) {
	d, ok := timeframeDurations[timeframe]
	return d, ok
}

func toPrices(symbol, timeframe string, klines []*futures.Kline) ([]models.Price, error) {
	prices := make([]models.Price, 0, len(klines))
	for _, k := range klines {
		price, err := toPrice(symbol, timeframe, k)
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func toPrice(symbol, timeframe string, k *futures.Kline) (models.Price, error) {
	var values [5]float64
	for i, s := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Price{}, fmt.Errorf("parse kline %s at %d: %w", symbol, k.OpenTime, err)
		}
		values[i] = v
	}

	return models.Price{
		Symbol:     symbol,
		TimeFrame:  timeframe,
		OpenTime:   time.UnixMilli(k.OpenTime).UTC(),
		CloseTime:  time.UnixMilli(k.CloseTime).UTC(),
		Open:       values[0],
		High:       values[1],
		Low:        values[2],
		Close:      values[3],
		Volume:     values[4],
		TradeCount: k.TradeNum,
	}, nil
}
