package models

import "time"

// TradeRecord is a closed simulated position belonging to a backtest run.
type TradeRecord struct {
	ID    uint   `gorm:"primaryKey"`
	RunID string `gorm:"index;not null"`

	Symbol     string  `gorm:"index;not null"`
	Side       string  `gorm:"not null"`
	Grade      string  `gorm:"size:1"`
	Size       float64 `gorm:"type:decimal(20,8);not null"`
	EntryPrice float64 `gorm:"type:decimal(20,8);not null"`
	ExitPrice  float64 `gorm:"type:decimal(20,8)"`

	StopLossPrice   float64 `gorm:"type:decimal(20,8);not null"`
	TakeProfitPrice float64 `gorm:"type:decimal(20,8);not null"`

	PnL        float64 `gorm:"type:decimal(20,8)"`
	Pips       float64 `gorm:"type:decimal(20,2)"`
	ExitReason string  `gorm:"not null"`

	OpenTime  time.Time `gorm:"index;not null"`
	CloseTime time.Time `gorm:"index"`
	Status    string    `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

const (
	PositionStatusOpen   = "open"
	PositionStatusClosed = "closed"

	ExitReasonStopLoss      = "stop_loss"
	ExitReasonTakeProfit    = "take_profit"
	ExitReasonEndOfBacktest = "end_of_backtest"
)
