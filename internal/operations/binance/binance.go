package binance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// MaxKlines is the largest page the klines endpoint serves.
const MaxKlines = 1500

type ClientConfig struct {
	APIKey      string
	SecretKey   string
	Timeout     time.Duration
	RateLimit   float64
	Burst       int
	MaxRetries  int
	Backoff     time.Duration
	TripAfter   uint32
	OpenTimeout time.Duration
}

type BinanceClient struct {
	client      *futures.Client
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	maxRetries  int
	backoff     time.Duration
	log         zerolog.Logger
}

func NewBinanceClient(cfg ClientConfig, log zerolog.Logger) *BinanceClient {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	futuresClient := futures.NewClient(cfg.APIKey, cfg.SecretKey)
	futuresClient.HTTPClient = httpClient

	settings := gobreaker.Settings{
		Name:     "binance-futures",
		Interval: 60 * time.Second,
		Timeout:  cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.TripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state changed")
		},
	}

	return &BinanceClient{
		client:      futuresClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		breaker:     gobreaker.NewCircuitBreaker(settings),
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.Backoff,
		log:         log,
	}
}

// GetKlines returns the latest limit candles for symbol.
func (c *BinanceClient) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*futures.Kline, error) {
	if limit <= 0 || limit > MaxKlines {
		return nil, fmt.Errorf("kline limit %d out of range 1..%d", limit, MaxKlines)
	}
	return c.do(ctx, func() ([]*futures.Kline, error) {
		return c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			Limit(limit).
			Do(ctx)
	})
}

// GetKlinesRange returns candles opened between startTime and endTime, in milliseconds.
func (c *BinanceClient) GetKlinesRange(ctx context.Context, symbol, interval string, startTime, endTime int64) ([]*futures.Kline, error) {
	return c.do(ctx, func() ([]*futures.Kline, error) {
		return c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(startTime).
			EndTime(endTime).
			Limit(MaxKlines).
			Do(ctx)
	})
}

func (c *BinanceClient) do(ctx context.Context, call func() ([]*futures.Kline, error)) ([]*futures.Kline, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err := c.breaker.Execute(func() (interface{}, error) {
			return call()
		})
		if err == nil {
			return klines.([]*futures.Kline), nil
		}
		lastErr = err

		// An open breaker will not recover within the backoff window.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * c.backoff
		c.log.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", waitTime).Msg("retrying klines request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return nil, fmt.Errorf("klines request: %w", lastErr)
}
