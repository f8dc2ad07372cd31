package models

import (
	"time"
)

type Price struct {
	ID         uint      `gorm:"primaryKey"`
	Symbol     string    `gorm:"uniqueIndex:idx_price_lookup;not null"`
	TimeFrame  string    `gorm:"uniqueIndex:idx_price_lookup;not null"`
	OpenTime   time.Time `gorm:"uniqueIndex:idx_price_lookup;not null"`
	CloseTime  time.Time `gorm:"index"`
	Open       float64   `gorm:"type:decimal(20,8)"`
	Close      float64   `gorm:"type:decimal(20,8)"`
	High       float64   `gorm:"type:decimal(20,8)"`
	Low        float64   `gorm:"type:decimal(20,8)"`
	Volume     float64   `gorm:"type:decimal(20,8)"`
	TradeCount int64
}

// TableName sets the table name for Price model
func (Price) TableName() string {
	return "prices"
}

// ToBar converts a stored candle into an analysis bar keyed by its open time.
func (p Price) ToBar() Bar {
	return Bar{
		Timestamp: p.OpenTime.UTC(),
		Open:      p.Open,
		High:      p.High,
		Low:       p.Low,
		Close:     p.Close,
		Volume:    p.Volume,
	}
}

// PricesToSeries converts stored candles into a series in the given order.
func PricesToSeries(prices []Price) Series {
	series := make(Series, len(prices))
	for i, p := range prices {
		series[i] = p.ToBar()
	}
	return series
}
