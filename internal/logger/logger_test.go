package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := build(Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "EURUSD").Int("bars", 200).Msg("analysis complete")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "EURUSD", entry["symbol"])
	assert.Equal(t, 200.0, entry["bars"])
	assert.Equal(t, "analysis complete", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := build(Config{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Debug().Str("symbol", "BTCUSDT").Msg("fetched klines")
	assert.Contains(t, buf.String(), "fetched klines")
	assert.Contains(t, buf.String(), "BTCUSDT")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", Output: "stderr"})
	assert.Error(t, err)
}
