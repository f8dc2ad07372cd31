package backtest

import (
	"math"

	"SmartMoneyAnalyzer/internal/models"
	"SmartMoneyAnalyzer/internal/numeric"
)

const tradingPeriodsPerYear = 252

func emptyResult(symbol, strategyID string, initialCapital float64, series models.Series) BacktestResult {
	result := BacktestResult{
		Symbol:            symbol,
		Strategy:          strategyID,
		InitialCapital:    initialCapital,
		FinalCapital:      initialCapital,
		EquityCurve:       []float64{initialCapital},
		Trades:            []Trade{},
		GradeDistribution: map[string]GradeStats{},
	}
	if len(series) > 0 {
		result.Timestamp = series.Sorted().Last().Timestamp
	}
	return result
}

// result derives the portfolio statistics from the finished run.
func (s *simulation) result(strategyID string, initialCapital float64, bars models.Series) BacktestResult {
	result := BacktestResult{
		Symbol:            s.symbol,
		Strategy:          strategyID,
		InitialCapital:    initialCapital,
		FinalCapital:      numeric.Percent(s.capital),
		TradingDays:       tradingDays(bars[s.cfg.Lookback : len(bars)-s.cfg.Margin]),
		EquityCurve:       make([]float64, len(s.equity)),
		Trades:            make([]Trade, len(s.closed)),
		GradeDistribution: map[string]GradeStats{},
		Timestamp:         bars.Last().Timestamp,
	}
	if initialCapital != 0 {
		result.TotalReturn = numeric.Percent((s.capital - initialCapital) / initialCapital * 100)
	}
	for i, v := range s.equity {
		result.EquityCurve[i] = numeric.Percent(v)
	}
	if len(s.closed) == 0 {
		return result
	}

	var winSum, lossSum, pips, pnl float64
	for i, t := range s.closed {
		pips += t.Pips
		pnl += t.PnL
		if t.PnL > 0 {
			result.WinningTrades++
			winSum += t.PnL
		} else {
			result.LosingTrades++
			lossSum += t.PnL
		}

		stats := result.GradeDistribution[t.Grade]
		stats.Count++
		if t.PnL > 0 {
			stats.Wins++
		}
		stats.TotalPnL += t.PnL
		result.GradeDistribution[t.Grade] = stats

		result.Trades[i] = rounded(t)
	}

	total := len(s.closed)
	result.TotalTrades = total
	result.WinRate = numeric.Percent(float64(result.WinningTrades) / float64(total) * 100)
	result.TotalPips = numeric.Pips(pips)
	result.TotalPnL = numeric.Percent(pnl)

	if result.WinningTrades > 0 {
		result.AvgWin = numeric.Percent(winSum / float64(result.WinningTrades))
	}
	result.AvgLoss = 1
	if result.LosingTrades > 0 {
		result.AvgLoss = numeric.Percent(math.Abs(lossSum / float64(result.LosingTrades)))
	}
	if result.LosingTrades > 0 && lossSum != 0 {
		result.ProfitFactor = numeric.Percent(math.Abs(winSum / lossSum))
	}

	result.SharpeRatio = numeric.Percent(sharpeRatio(s.equity))
	result.MaxDrawdown = numeric.Percent(maxDrawdown(s.equity))

	for grade, stats := range result.GradeDistribution {
		stats.WinRate = numeric.Percent(float64(stats.Wins) / float64(stats.Count) * 100)
		stats.TotalPnL = numeric.Percent(stats.TotalPnL)
		result.GradeDistribution[grade] = stats
	}
	return result
}

// sharpeRatio annualises the mean over the sample deviation of the per-bar
// equity returns.
func sharpeRatio(equity []float64) float64 {
	returns := make([]float64, 0, len(equity))
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			continue
		}
		returns = append(returns, (equity[i]-equity[i-1])/equity[i-1])
	}
	if len(returns) < 2 {
		return 0
	}

	std := numeric.SampleStd(returns)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return numeric.Mean(returns) / std * math.Sqrt(tradingPeriodsPerYear)
}

// maxDrawdown is the deepest fall from a running peak, in percent.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}

	peak := equity[0]
	worst := 0.0
	for _, v := range equity {
		peak = math.Max(peak, v)
		if peak <= 0 {
			continue
		}
		worst = math.Min(worst, (v-peak)/peak)
	}
	return numeric.Clamp(math.Abs(worst)*100, 0, 100)
}

func tradingDays(bars models.Series) int {
	days := make(map[string]struct{}, len(bars))
	for _, b := range bars {
		days[b.Timestamp.UTC().Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

func rounded(t Trade) Trade {
	t.EntryPrice = numeric.Price(t.EntryPrice)
	t.StopLoss = numeric.Price(t.StopLoss)
	t.TakeProfit = numeric.Price(t.TakeProfit)
	t.ExitPrice = numeric.Price(t.ExitPrice)
	t.Size = numeric.Round(t.Size, 4)
	t.PnL = numeric.Percent(t.PnL)
	t.Pips = numeric.Pips(t.Pips)
	return t
}
