package backtest

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/services/analysis"
)

var gradeRank = map[string]int{"S": 5, "A": 4, "B": 3, "C": 2, "D": 1, "E": 0}

// simulation is the mutable state of one run. capital moves only when a
// position closes.
type simulation struct {
	cfg      Config
	analyzer *analysis.MarketAnalyzer
	symbol   string

	capital float64
	open    []*Trade
	closed  []Trade
	equity  []float64
}

func newSimulation(cfg Config, analyzer *analysis.MarketAnalyzer, symbol string, initialCapital float64) *simulation {
	return &simulation{
		cfg:      cfg,
		analyzer: analyzer,
		symbol:   symbol,
		capital:  initialCapital,
		equity:   []float64{initialCapital},
	}
}

// Simulate replays series bar by bar without any I/O.
func (b *Backtester) Simulate(symbol, strategyID string, initialCapital float64, series models.Series) BacktestResult {
	if len(series) < b.cfg.MinBars || len(series) <= b.cfg.Lookback+b.cfg.Margin {
		return emptyResult(symbol, strategyID, initialCapital, series)
	}

	bars := series.Sorted()
	sim := newSimulation(b.cfg, b.analyzer, symbol, initialCapital)
	sim.run(bars)
	return sim.result(strategyID, initialCapital, bars)
}

// run walks every bar from the lookback to the margin. The last bars are
// only used to mark the remaining positions to market.
func (s *simulation) run(bars models.Series) {
	lookback := s.cfg.Lookback
	for i := lookback; i < len(bars)-s.cfg.Margin; i++ {
		window := bars[i-lookback : i+1]
		result := s.analyzer.AnalyzeMarket(s.symbol, window)
		if len(result.Signals) > 0 {
			signal := result.Signals[0]
			if s.qualifies(signal.Grade) {
				s.open = append(s.open, s.openPosition(signal.Direction, signal.Grade, i, bars[i], result.Technical.ATR.Value().Value))
			}
		}

		s.manage(i, bars[i])
		s.equity = append(s.equity, s.capital)
	}

	// Force close at the last available close
	lastIdx := len(bars) - 1
	last := bars[lastIdx]
	for _, pos := range s.open {
		s.close(pos, lastIdx, last, last.Close, ExitEndOfBacktest)
	}
	s.open = nil
}

func (s *simulation) qualifies(grade string) bool {
	rank, ok := gradeRank[grade]
	return ok && rank >= gradeRank[s.cfg.MinGrade]
}

// openPosition sizes the trade so that hitting the stop loses the configured
// share of capital.
func (s *simulation) openPosition(direction, grade string, index int, bar models.Bar, atr float64) *Trade {
	entry := bar.Close
	stop, target := s.analyzer.Bracket(direction, entry, atr)

	size := s.cfg.FallbackSize
	if distance := math.Abs(entry - stop); distance > 0 {
		size = s.capital * s.cfg.RiskPerTrade / distance
	}

	return &Trade{
		EntryIndex: index,
		EntryPrice: entry,
		EntryTime:  bar.Timestamp,
		Direction:  direction,
		StopLoss:   stop,
		TakeProfit: target,
		Size:       size,
		Grade:      grade,
		Status:     StatusOpen,
	}
}

// manage resolves exits on bar i. The stop is always checked before the
// target, so a bar that spans both counts as a loss.
func (s *simulation) manage(i int, bar models.Bar) {
	still := s.open[:0]
	for _, pos := range s.open {
		exitPrice, reason := 0.0, ""
		if pos.Direction == analysis.DirectionLong {
			switch {
			case bar.Low <= pos.StopLoss:
				exitPrice, reason = pos.StopLoss, ExitStopLoss
			case bar.High >= pos.TakeProfit:
				exitPrice, reason = pos.TakeProfit, ExitTakeProfit
			}
		} else {
			switch {
			case bar.High >= pos.StopLoss:
				exitPrice, reason = pos.StopLoss, ExitStopLoss
			case bar.Low <= pos.TakeProfit:
				exitPrice, reason = pos.TakeProfit, ExitTakeProfit
			}
		}

		if reason == "" {
			still = append(still, pos)
			continue
		}
		s.close(pos, i, bar, exitPrice, reason)
	}
	s.open = still
}

func (s *simulation) close(pos *Trade, index int, bar models.Bar, exitPrice float64, reason string) {
	delta := exitPrice - pos.EntryPrice
	if pos.Direction == analysis.DirectionShort {
		delta = -delta
	}

	pos.Status = StatusClosed
	pos.ExitIndex = index
	pos.ExitPrice = exitPrice
	pos.ExitTime = bar.Timestamp
	pos.ExitReason = reason
	pos.PnL = delta * pos.Size
	pos.Pips = delta * s.cfg.PipFactor

	s.capital += pos.PnL
	s.closed = append(s.closed, *pos)
}
