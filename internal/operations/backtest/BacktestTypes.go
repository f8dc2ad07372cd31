package backtest

import (
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/creasty/defaults"
)

// Exit reasons. Every closed trade carries exactly one.
const (
	ExitStopLoss      = models.ExitReasonStopLoss
	ExitTakeProfit    = models.ExitReasonTakeProfit
	ExitEndOfBacktest = models.ExitReasonEndOfBacktest

	StatusOpen   = models.PositionStatusOpen
	StatusClosed = models.PositionStatusClosed
)

// Config holds the simulation settings.
type Config struct {
	Timeframe      string  `yaml:"timeframe" default:"1h" validate:"required"`
	Periods        int     `yaml:"periods" default:"200" validate:"min=1"`
	InitialCapital float64 `yaml:"initial_capital" default:"10000" validate:"gt=0"`
	RiskPerTrade   float64 `yaml:"risk_per_trade" default:"0.02" validate:"gt=0,lt=1"`
	MinGrade       string  `yaml:"min_grade" default:"B" validate:"oneof=S A B C D E"`

	MinBars      int     `yaml:"min_bars" default:"100" validate:"min=1"`
	Lookback     int     `yaml:"lookback" default:"50" validate:"min=1"`
	Margin       int     `yaml:"margin" default:"10" validate:"min=0"`
	FallbackSize float64 `yaml:"fallback_size" default:"0.01" validate:"gt=0"`
	PipFactor    float64 `yaml:"pip_factor" default:"10000" validate:"gt=0"`

	Iterations  int `yaml:"iterations" default:"5" validate:"min=1"`
	BasePeriods int `yaml:"base_periods" default:"300" validate:"min=1"`
	PeriodStep  int `yaml:"period_step" default:"50" validate:"min=0"`
	Parallelism int `yaml:"parallelism" default:"4" validate:"min=1"`
}

// NewConfig creates the default config
func NewConfig() Config {
	var c Config
	defaults.MustSet(&c)
	return c
}

// Trade is one simulated position, open or closed.
type Trade struct {
	EntryIndex int       `json:"entry_index"`
	EntryPrice float64   `json:"entry_price"`
	EntryTime  time.Time `json:"entry_time"`
	Direction  string    `json:"direction"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Size       float64   `json:"position_size"`
	Grade      string    `json:"grade"`
	Status     string    `json:"status"`
	ExitIndex  int       `json:"exit_index"`
	ExitPrice  float64   `json:"exit_price"`
	ExitTime   time.Time `json:"exit_time"`
	ExitReason string    `json:"exit_reason"`
	PnL        float64   `json:"pnl"`
	Pips       float64   `json:"pips"`
}

// GradeStats summarises the trades opened at one grade.
type GradeStats struct {
	Count    int     `json:"count"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"win_rate"`
	TotalPnL float64 `json:"total_pnl"`
}

type BacktestResult struct {
	Symbol            string                `json:"symbol"`
	Strategy          string                `json:"strategy"`
	InitialCapital    float64               `json:"initial_capital"`
	FinalCapital      float64               `json:"final_capital"`
	TotalReturn       float64               `json:"total_return"`
	TotalTrades       int                   `json:"total_trades"`
	WinningTrades     int                   `json:"winning_trades"`
	LosingTrades      int                   `json:"losing_trades"`
	WinRate           float64               `json:"win_rate"`
	TotalPips         float64               `json:"total_pips"`
	TotalPnL          float64               `json:"total_pnl"`
	AvgWin            float64               `json:"avg_win"`
	AvgLoss           float64               `json:"avg_loss"`
	ProfitFactor      float64               `json:"profit_factor"`
	SharpeRatio       float64               `json:"sharpe_ratio"`
	MaxDrawdown       float64               `json:"max_drawdown"`
	TradingDays       int                   `json:"trading_days"`
	EquityCurve       []float64             `json:"equity_curve"`
	Trades            []Trade               `json:"trades"`
	GradeDistribution map[string]GradeStats `json:"grade_distribution"`
	Timestamp         time.Time             `json:"timestamp"`
}

// IterationResult is one run of a multi-run backtest.
type IterationResult struct {
	Iteration int `json:"iteration"`
	Periods   int `json:"periods"`
	BacktestResult
}

type Summary struct {
	AvgWinRate       float64 `json:"avg_win_rate"`
	AvgSharpeRatio   float64 `json:"avg_sharpe_ratio"`
	AvgReturn        float64 `json:"avg_return"`
	AvgMaxDrawdown   float64 `json:"avg_max_drawdown"`
	TotalTrades      int     `json:"total_trades"`
	ConsistencyScore float64 `json:"consistency_score"`
}

type MultiBacktestResult struct {
	Symbol            string            `json:"symbol"`
	Strategy          string            `json:"strategy"`
	Iterations        int               `json:"iterations"`
	IndividualResults []IterationResult `json:"individual_results"`
	Summary           Summary           `json:"summary"`
	Assessment        []string          `json:"assessment"`
	Timestamp         time.Time         `json:"timestamp"`
}
