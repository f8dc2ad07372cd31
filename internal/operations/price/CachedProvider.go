package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// DefaultCacheTTL is how long a fetched series stays reusable.
const DefaultCacheTTL = 60 * time.Second

// CachedProvider keeps recent series in Redis in front of another provider.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func CacheKey(symbol, timeframe string, limit int) string {
	return fmt.Sprintf("ohlcv:%s_%s_%d", symbol, timeframe, limit)
}

func (p *CachedProvider) GetSeries(ctx context.Context, symbol, timeframe string, limit int) (models.Series, error) {
	key := CacheKey(symbol, timeframe, limit)

	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var series models.Series
		if err := json.Unmarshal(raw, &series); err == nil {
			p.log.Debug().Str("key", key).Int("bars", len(series)).Msg("series cache hit")
			return series, nil
		}
		p.log.Warn().Str("key", key).Msg("discarding undecodable cached series")
	case errors.Is(err, redis.Nil):
	default:
		p.log.Warn().Err(err).Str("key", key).Msg("series cache read failed")
	}

	series, err := p.next.GetSeries(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(series)
	if err != nil {
		return series, nil
	}
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("series cache write failed")
	}
	return series, nil
}
