package models

import "time"

// BacktestRun stores the summary of one simulation run. Trades hang off RunID.
type BacktestRun struct {
	ID             uint    `gorm:"primaryKey"`
	RunID          string  `gorm:"uniqueIndex;size:36;not null"`
	Symbol         string  `gorm:"index;not null"`
	Strategy       string  `gorm:"index;not null"`
	InitialCapital float64 `gorm:"type:decimal(20,2)"`
	FinalCapital   float64 `gorm:"type:decimal(20,2)"`
	TotalReturn    float64 `gorm:"type:decimal(10,2)"`
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64 `gorm:"type:decimal(6,2)"`
	ProfitFactor   float64 `gorm:"type:decimal(10,2)"`
	SharpeRatio    float64 `gorm:"type:decimal(10,2)"`
	MaxDrawdown    float64 `gorm:"type:decimal(6,2)"`
	TotalPips      float64 `gorm:"type:decimal(20,1)"`
	ResultJSON     string  `gorm:"type:text"`

	Trades []TradeRecord `gorm:"foreignKey:RunID;references:RunID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
