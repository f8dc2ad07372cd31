package models

import "time"

// SignalRecord stores an emitted confluence signal.
type SignalRecord struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"index;not null"`
	Timeframe  string    `gorm:"not null"`
	Direction  string    `gorm:"not null"`
	Grade      string    `gorm:"size:1;index"`
	Score      int       `gorm:"not null"`
	Confidence float64   `gorm:"type:decimal(6,2)"`
	EntryPrice float64   `gorm:"type:decimal(20,8);not null"`
	StopLoss   float64   `gorm:"type:decimal(20,8);not null"`
	TakeProfit float64   `gorm:"type:decimal(20,8);not null"`
	RiskReward float64   `gorm:"type:decimal(10,2)"`
	Factors    string    `gorm:"type:text"`
	Reasoning  string    `gorm:"type:text"`
	SignalTime time.Time `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SignalRecord) TableName() string {
	return "signals"
}
