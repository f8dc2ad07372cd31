package backtest

import (
	"SmartMoneyAnalyzer/internal/numeric"
)

// summarize averages the per-run statistics. Consistency falls by ten points
// per point of spread in the run returns.
func summarize(runs []IterationResult) Summary {
	var winRates, sharpes, returns, drawdowns []float64
	total := 0
	for _, r := range runs {
		winRates = append(winRates, r.WinRate)
		sharpes = append(sharpes, r.SharpeRatio)
		returns = append(returns, r.TotalReturn)
		drawdowns = append(drawdowns, r.MaxDrawdown)
		total += r.TotalTrades
	}

	consistency := numeric.Clamp(100-numeric.PopulationStd(returns)*10, 0, 100)
	return Summary{
		AvgWinRate:       numeric.Percent(numeric.Mean(winRates)),
		AvgSharpeRatio:   numeric.Percent(numeric.Mean(sharpes)),
		AvgReturn:        numeric.Percent(numeric.Mean(returns)),
		AvgMaxDrawdown:   numeric.Percent(numeric.Mean(drawdowns)),
		TotalTrades:      total,
		ConsistencyScore: numeric.Percent(consistency),
	}
}

// assess turns the summary into one line per metric.
func assess(s Summary) []string {
	lines := make([]string, 0, 4)

	switch {
	case s.AvgSharpeRatio > 1.5:
		lines = append(lines, "Excellent risk-adjusted returns (Sharpe > 1.5)")
	case s.AvgSharpeRatio > 1.0:
		lines = append(lines, "Good risk-adjusted returns (Sharpe > 1.0)")
	case s.AvgSharpeRatio > 0.5:
		lines = append(lines, "Moderate risk-adjusted returns")
	default:
		lines = append(lines, "Poor risk-adjusted returns, the strategy needs improvement")
	}

	switch {
	case s.AvgWinRate > 60:
		lines = append(lines, "High win rate above 60%")
	case s.AvgWinRate > 50:
		lines = append(lines, "Moderate win rate above 50%")
	default:
		lines = append(lines, "Low win rate below 50%, consider tighter entry criteria")
	}

	switch {
	case s.AvgMaxDrawdown < 10:
		lines = append(lines, "Low drawdown risk, good risk control")
	case s.AvgMaxDrawdown < 20:
		lines = append(lines, "Moderate drawdown risk, acceptable level")
	default:
		lines = append(lines, "High drawdown risk, implement stricter risk management")
	}

	switch {
	case s.ConsistencyScore > 80:
		lines = append(lines, "Highly consistent performance across iterations")
	case s.ConsistencyScore > 60:
		lines = append(lines, "Moderately consistent performance")
	default:
		lines = append(lines, "Inconsistent performance, the strategy may be curve-fitted")
	}

	return lines
}
