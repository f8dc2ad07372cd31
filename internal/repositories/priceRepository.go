package repositories

import (
	"context"
	"errors"

	"SmartMoneyAnalyzer/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

type PriceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new instance of PriceRepository
func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Create adds a new Price record to the database
func (r *PriceRepository) Create(ctx context.Context, price *models.Price) error {
	if price == nil {
		return errors.New("price cannot be nil")
	}
	return r.db.WithContext(ctx).Create(price).Error
}

// CreateBatch stores candles, skipping any already recorded for the same
// symbol, timeframe and open time.
func (r *PriceRepository) CreateBatch(ctx context.Context, prices []models.Price) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(prices, insertBatchSize)
	return result.RowsAffected, result.Error
}

// GetRecent returns the last limit candles for symbol and timeframe, oldest first.
func (r *PriceRepository) GetRecent(ctx context.Context, symbol, timeFrame string, limit int) ([]models.Price, error) {
	if symbol == "" || timeFrame == "" {
		return nil, errors.New("invalid symbol or timeframe")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var prices []models.Price
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND time_frame = ?", symbol, timeFrame).
		Order("open_time DESC").
		Limit(limit).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(prices)-1; i < j; i, j = i+1, j-1 {
		prices[i], prices[j] = prices[j], prices[i]
	}
	return prices, nil
}

// GetLatestPriceByTimeFrame returns the newest stored candle, or nil when none exist.
func (r *PriceRepository) GetLatestPriceByTimeFrame(ctx context.Context, symbol, timeFrame string) (*models.Price, error) {
	if symbol == "" || timeFrame == "" {
		return nil, errors.New("invalid symbol or timeframe")
	}

	var price models.Price
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND time_frame = ?", symbol, timeFrame).
		Order("open_time DESC").
		First(&price).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}
