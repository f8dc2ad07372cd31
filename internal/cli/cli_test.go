package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"SmartMoneyAnalyzer/internal/handlers"
	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/operations/price"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type seriesProvider models.Series

func (s seriesProvider) GetSeries(_ context.Context, _, _ string, limit int) (models.Series, error) {
	return models.Series(s).Tail(limit), nil
}

func flat(n int) models.Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.Series, n)
	for i := range series {
		series[i] = models.Bar{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      1.1,
			High:      1.1,
			Low:       1.1,
			Close:     1.1,
			Volume:    100,
		}
	}
	return series
}

func run(t *testing.T, provider price.Provider, args ...string) (string, error) {
	t.Helper()
	app := &App{}
	app.ProviderFor = func(string) (price.Provider, error) { return provider, nil }
	return execute(app, args...)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, seriesProvider(flat(120)), "analyze", "--symbol", "EURUSD", "--limit", "100")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "EURUSD", decoded["symbol"])
	assert.Equal(t, 1.1, decoded["current_price"])
	assert.Empty(t, decoded["signals"])
}

func TestNarrateCommand(t *testing.T) {
	out, err := run(t, seriesProvider(flat(5)), "narrate", "--symbol", "EURUSD")
	require.NoError(t, err)
	assert.Contains(t, out, "Waiting for market data")
}

func TestBacktestCommand(t *testing.T) {
	out, err := run(t, seriesProvider(flat(300)), "backtest", "--symbol", "EURUSD", "--capital", "5000")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 5000.0, decoded["final_capital"])
	assert.Equal(t, "smc_ict", decoded["strategy"])
}

func TestBacktestMultiCommand(t *testing.T) {
	out, err := run(t, seriesProvider(flat(500)), "backtest-multi", "--symbol", "EURUSD", "--iterations", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"iterations": 2`)
}

func TestStrategiesCommand(t *testing.T) {
	out, err := run(t, nil, "strategies")
	require.NoError(t, err)
	assert.Contains(t, out, "smc_ict")
	assert.Contains(t, out, "multi_timeframe")
}

func TestMissingSymbolFails(t *testing.T) {
	_, err := run(t, seriesProvider(flat(10)), "analyze")
	assert.Error(t, err)
}

func TestProviderErrorFailsCommand(t *testing.T) {
	boom := errors.New("no route to exchange")
	app := &App{ProviderFor: func(string) (price.Provider, error) { return nil, boom }}
	root := NewRootCmd(app)
	root.SetArgs([]string{"analyze", "--symbol", "EURUSD", "--log-level", "disabled"})
	root.SetOut(&bytes.Buffer{})

	assert.ErrorIs(t, root.ExecuteContext(context.Background()), boom)
}

func mockApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &App{db: db}, mock
}

func execute(app *App, args ...string) (string, error) {
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetArgs(append(args, "--log-level", "disabled"))
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignalsCommand(t *testing.T) {
	app, mock := mockApp(t)
	rows := sqlmock.NewRows([]string{"id", "symbol", "timeframe", "direction", "grade", "score", "entry_price", "signal_time"}).
		AddRow(1, "EURUSD", "1h", "long", "A", 70, 1.1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT \* FROM "signals" WHERE symbol = \$1 ORDER BY signal_time DESC LIMIT`).
		WillReturnRows(rows)
	mock.ExpectClose()

	out, err := execute(app, "signals", "--symbol", "eurusd", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "GRADE")
	assert.Contains(t, out, "2024-01-01T00:00:00Z")
	assert.Contains(t, out, "1.10000")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunCommandNotFound(t *testing.T) {
	app, mock := mockApp(t)
	mock.ExpectQuery(`SELECT \* FROM "backtest_runs" WHERE run_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "run_id"}))
	mock.ExpectClose()

	_, err := execute(app, "run", "5b0c6f0e-3f52-4a55-9d0c-1f1f5c1b2a9e")
	assert.ErrorIs(t, err, handlers.ErrRunNotFound)
}

func TestCloseReleasesCache(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	app := &App{cache: client}

	require.NoError(t, app.close())
	assert.Nil(t, app.cache)
	assert.ErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)
}
