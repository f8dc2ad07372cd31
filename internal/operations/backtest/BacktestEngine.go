// Package backtest replays price history through the market analyzer and
// reports how its graded signals would have traded.
package backtest

import (
	"context"
	"fmt"

	"SmartMoneyAnalyzer/internal/operations/price"
	"SmartMoneyAnalyzer/internal/services/analysis"

	"golang.org/x/sync/errgroup"
)

type Backtester struct {
	provider price.Provider
	analyzer *analysis.MarketAnalyzer
	cfg      Config
}

func NewBacktester(provider price.Provider, analyzer *analysis.MarketAnalyzer, cfg Config) *Backtester {
	return &Backtester{
		provider: provider,
		analyzer: analyzer,
		cfg:      cfg,
	}
}

// Config returns the settings the backtester was built with.
func (b *Backtester) Config() Config { return b.cfg }

// RunBacktest fetches the configured number of bars and simulates them.
func (b *Backtester) RunBacktest(ctx context.Context, symbol, strategyID string, initialCapital float64) (BacktestResult, error) {
	return b.runPeriods(ctx, symbol, strategyID, initialCapital, b.cfg.Periods)
}

func (b *Backtester) runPeriods(ctx context.Context, symbol, strategyID string, initialCapital float64, periods int) (BacktestResult, error) {
	series, err := b.provider.GetSeries(ctx, symbol, b.cfg.Timeframe, periods)
	if err != nil {
		return BacktestResult{}, fmt.Errorf("fetch %s %s series: %w", symbol, b.cfg.Timeframe, err)
	}
	return b.Simulate(symbol, strategyID, initialCapital, series), nil
}

// RunMultipleBacktests repeats the run over growing history lengths and
// scores how consistent the returns were. Runs execute concurrently but
// results keep iteration order.
func (b *Backtester) RunMultipleBacktests(ctx context.Context, symbol, strategyID string, iterations int) (MultiBacktestResult, error) {
	if iterations <= 0 {
		iterations = b.cfg.Iterations
	}

	runs := make([]IterationResult, iterations)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Parallelism)
	for i := 0; i < iterations; i++ {
		i := i
		periods := b.cfg.BasePeriods + i*b.cfg.PeriodStep
		g.Go(func() error {
			result, err := b.runPeriods(ctx, symbol, strategyID, b.cfg.InitialCapital, periods)
			if err != nil {
				return fmt.Errorf("iteration %d: %w", i+1, err)
			}
			runs[i] = IterationResult{Iteration: i + 1, Periods: periods, BacktestResult: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MultiBacktestResult{}, err
	}

	summary := summarize(runs)
	multi := MultiBacktestResult{
		Symbol:            symbol,
		Strategy:          strategyID,
		Iterations:        iterations,
		IndividualResults: runs,
		Summary:           summary,
		Assessment:        assess(summary),
	}
	for _, r := range runs {
		if r.Timestamp.After(multi.Timestamp) {
			multi.Timestamp = r.Timestamp
		}
	}
	return multi, nil
}
