package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klinesBody = `[[1704067200000,"1.10","1.12","1.09","1.11","250.5",1704070799999,"275.0",42,"100.0","110.0","0"]]`

func testClient(t *testing.T, handler http.HandlerFunc, tripAfter uint32) *BinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewBinanceClient(ClientConfig{
		Timeout:     time.Second,
		RateLimit:   1000,
		Burst:       10,
		MaxRetries:  3,
		Backoff:     time.Millisecond,
		TripAfter:   tripAfter,
		OpenTimeout: time.Minute,
	}, zerolog.Nop())
	c.client.BaseURL = srv.URL
	return c
}

func TestGetKlinesParsesResponse(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fapi/v1/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1h", r.URL.Query().Get("interval"))
		w.Write([]byte(klinesBody))
	}, 5)

	klines, err := c.GetKlines(context.Background(), "BTCUSDT", "1h", 1)
	require.NoError(t, err)
	require.Len(t, klines, 1)
	assert.Equal(t, int64(1704067200000), klines[0].OpenTime)
	assert.Equal(t, "1.11", klines[0].Close)
	assert.Equal(t, int64(42), klines[0].TradeNum)
}

func TestGetKlinesRetriesTransientFailures(t *testing.T) {
	var calls int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code":-1000,"msg":"unknown"}`))
			return
		}
		w.Write([]byte(klinesBody))
	}, 5)

	klines, err := c.GetKlines(context.Background(), "BTCUSDT", "1h", 1)
	require.NoError(t, err)
	assert.Len(t, klines, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBreakerStopsRetries(t *testing.T) {
	var calls int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"code":-1000,"msg":"down"}`))
	}, 2)

	_, err := c.GetKlines(context.Background(), "BTCUSDT", "1h", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetKlinesRejectsBadLimit(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, 5)

	_, err := c.GetKlines(context.Background(), "BTCUSDT", "1h", 0)
	assert.Error(t, err)
	_, err = c.GetKlines(context.Background(), "BTCUSDT", "1h", MaxKlines+1)
	assert.Error(t, err)
}

func TestGetKlinesHonorsContext(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetKlines(ctx, "BTCUSDT", "1h", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
