package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/operations/backtest"
	"SmartMoneyAnalyzer/internal/services/analysis"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rising(n int) models.Series {
	series := make(models.Series, n)
	for i := range series {
		open := 1.0 + 0.0001*float64(i-1)
		close := 1.0 + 0.0001*float64(i)
		bar := models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      open,
			High:      close,
			Low:       open,
			Close:     close,
			Volume:    1000,
		}
		switch i % 20 {
		case 3:
			bar.High += 0.001
		case 13:
			bar.Low -= 0.001
		}
		series[i] = bar
	}
	return series
}

type stubProvider struct {
	series models.Series
	err    error
}

func (s stubProvider) GetSeries(_ context.Context, _, _ string, limit int) (models.Series, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series.Tail(limit), nil
}

type fakeMetrics struct {
	mu          sync.Mutex
	analyses    int
	signals     []string
	backtests   int
	persistence []string
}

func (m *fakeMetrics) RecordAnalysis(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses++
}

func (m *fakeMetrics) RecordSignal(_, direction, grade string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, direction+"/"+grade)
}

func (m *fakeMetrics) RecordBacktest(string, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backtests++
}

func (m *fakeMetrics) RecordPersistenceError(entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistence = append(m.persistence, entity)
}

type fakeSignals struct {
	saved []models.SignalRecord
	err   error
}

func (f *fakeSignals) Create(_ context.Context, signal *models.SignalRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *signal)
	return nil
}

type fakeRuns struct {
	saved []models.BacktestRun
	err   error
}

func (f *fakeRuns) Save(_ context.Context, run *models.BacktestRun) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *run)
	return nil
}

func TestAnalyzePersistsSignals(t *testing.T) {
	metrics := &fakeMetrics{}
	store := &fakeSignals{}
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{series: rising(200)}, store, metrics, zerolog.Nop())

	result, err := h.Analyze(context.Background(), "EURUSD", "1h", 200, true)
	require.NoError(t, err)
	require.Len(t, result.Signals, 1)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	signal := result.Signals[0]
	assert.Equal(t, "1h", saved.Timeframe)
	assert.Equal(t, signal.Grade, saved.Grade)
	assert.Equal(t, signal.EntryPrice, saved.EntryPrice)
	assert.Equal(t, signal.Timestamp, saved.SignalTime)
	assert.Contains(t, saved.Factors, "Bullish Structure")
	assert.Equal(t, 1, metrics.analyses)
	assert.Equal(t, []string{"long/" + signal.Grade}, metrics.signals)
}

func TestAnalyzeReturnsResultWhenStoreFails(t *testing.T) {
	metrics := &fakeMetrics{}
	store := &fakeSignals{err: errors.New("db down")}
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{series: rising(200)}, store, metrics, zerolog.Nop())

	result, err := h.Analyze(context.Background(), "EURUSD", "1h", 200, true)
	require.NoError(t, err)
	assert.Len(t, result.Signals, 1)
	assert.Equal(t, []string{EntitySignal}, metrics.persistence)
}

func TestAnalyzeWithoutPersistence(t *testing.T) {
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{series: rising(200)}, nil, &fakeMetrics{}, zerolog.Nop())

	result, err := h.Analyze(context.Background(), "EURUSD", "1h", 200, true)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", result.Symbol)
}

func TestProviderErrorsPropagate(t *testing.T) {
	boom := errors.New("exchange down")
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{err: boom}, nil, &fakeMetrics{}, zerolog.Nop())

	_, err := h.Analyze(context.Background(), "EURUSD", "1h", 200, false)
	assert.ErrorIs(t, err, boom)
	_, err = h.Narrate(context.Background(), "EURUSD", "1h", 200)
	assert.ErrorIs(t, err, boom)
}

func TestNarrate(t *testing.T) {
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{series: rising(30)}, nil, &fakeMetrics{}, zerolog.Nop())

	narration, err := h.Narrate(context.Background(), "EURUSD", "1h", 30)
	require.NoError(t, err)
	assert.Contains(t, narration.Narration, "**EURUSD Live Analysis**")
}

func TestWatchStopsWithContext(t *testing.T) {
	metrics := &fakeMetrics{}
	h := NewAnalysisHandler(analysis.NewMarketAnalyzer(analysis.DefaultParams()), stubProvider{series: rising(60)}, nil, metrics, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	seen := map[string]bool{}
	done := make(chan struct{})
	go func() {
		h.Watch(ctx, []string{"EURUSD", "GBPUSD"}, "1h", 60, 5*time.Millisecond, false, func(r analysis.AnalysisResult) {
			mu.Lock()
			defer mu.Unlock()
			seen[r.Symbol] = true
		})
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen["EURUSD"] && seen["GBPUSD"]
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func newBacktestHandler(series models.Series, runs RunStore, metrics Metrics) *BacktestHandler {
	bt := backtest.NewBacktester(stubProvider{series: series}, analysis.NewMarketAnalyzer(analysis.DefaultParams()), backtest.NewConfig())
	return NewBacktestHandler(bt, runs, metrics, zerolog.Nop())
}

func TestBacktestPersistsRun(t *testing.T) {
	metrics := &fakeMetrics{}
	runs := &fakeRuns{}
	h := newBacktestHandler(rising(200), runs, metrics)

	result, err := h.Run(context.Background(), "EURUSD", "smc_ict", 10000, true)
	require.NoError(t, err)
	require.Len(t, runs.saved, 1)

	run := runs.saved[0]
	assert.Equal(t, result.TotalTrades, run.TotalTrades)
	assert.Equal(t, result.FinalCapital, run.FinalCapital)
	require.Len(t, run.Trades, len(result.Trades))
	for i, trade := range run.Trades {
		assert.Equal(t, result.Trades[i].ExitReason, trade.ExitReason)
		assert.Equal(t, result.Trades[i].Direction, trade.Side)
	}

	var decoded backtest.BacktestResult
	require.NoError(t, json.Unmarshal([]byte(run.ResultJSON), &decoded))
	assert.Equal(t, result.TotalTrades, decoded.TotalTrades)
	assert.Equal(t, 1, metrics.backtests)
}

func TestBacktestReturnsResultWhenStoreFails(t *testing.T) {
	metrics := &fakeMetrics{}
	h := newBacktestHandler(rising(200), &fakeRuns{err: errors.New("db down")}, metrics)

	result, err := h.Run(context.Background(), "EURUSD", "smc_ict", 10000, true)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", result.Symbol)
	assert.Equal(t, []string{EntityBacktest}, metrics.persistence)
}

func TestRunMultiplePersistsEachIteration(t *testing.T) {
	runs := &fakeRuns{}
	h := newBacktestHandler(rising(500), runs, &fakeMetrics{})

	result, err := h.RunMultiple(context.Background(), "EURUSD", "smc_ict", 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Iterations)
	assert.Len(t, runs.saved, 2)
}

func TestBacktestLabelsStrategy(t *testing.T) {
	var logs bytes.Buffer
	bt := backtest.NewBacktester(stubProvider{series: rising(200)}, analysis.NewMarketAnalyzer(analysis.DefaultParams()), backtest.NewConfig())
	h := NewBacktestHandler(bt, nil, &fakeMetrics{}, zerolog.New(&logs))

	_, err := h.Run(context.Background(), "EURUSD", "order_block", 10000, false)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"strategy_name":"Order Block Trading"`)
	assert.NotContains(t, logs.String(), "strategy not in catalog")

	logs.Reset()
	_, err = h.Run(context.Background(), "EURUSD", "custom", 10000, false)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "strategy not in catalog")
	assert.Contains(t, logs.String(), `"strategy_name":"custom"`)
}

type fakeHistory struct {
	signals []models.SignalRecord
	run     *models.BacktestRun
	err     error
	symbol  string
}

func (f *fakeHistory) FindRecent(_ context.Context, symbol string, limit int) ([]models.SignalRecord, error) {
	f.symbol = symbol
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.signals) {
		return f.signals[:limit], nil
	}
	return f.signals, nil
}

func (f *fakeHistory) FindByRunID(context.Context, string) (*models.BacktestRun, error) {
	return f.run, f.err
}

func TestRecentSignals(t *testing.T) {
	history := &fakeHistory{signals: []models.SignalRecord{{Grade: "A"}, {Grade: "B"}, {Grade: "C"}}}
	h := NewHistoryHandler(history, history, zerolog.Nop())

	signals, err := h.RecentSignals(context.Background(), " eurusd ", 2)
	require.NoError(t, err)
	assert.Len(t, signals, 2)
	assert.Equal(t, "EURUSD", history.symbol)

	_, err = h.RecentSignals(context.Background(), "EURUSD", 0)
	assert.Error(t, err)

	history.err = errors.New("db down")
	_, err = h.RecentSignals(context.Background(), "EURUSD", 2)
	assert.ErrorIs(t, err, history.err)
}

func TestHistoryRun(t *testing.T) {
	history := &fakeHistory{}
	h := NewHistoryHandler(history, history, zerolog.Nop())

	_, err := h.Run(context.Background(), "5b0c6f0e-3f52-4a55-9d0c-1f1f5c1b2a9e")
	assert.ErrorIs(t, err, ErrRunNotFound)

	history.run = &models.BacktestRun{RunID: "5b0c6f0e-3f52-4a55-9d0c-1f1f5c1b2a9e", TotalTrades: 3}
	run, err := h.Run(context.Background(), history.run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, run.TotalTrades)
}
