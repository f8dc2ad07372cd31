package repositories

import (
	"context"
	"errors"

	"SmartMoneyAnalyzer/internal/models"

	"gorm.io/gorm"
)

type SignalRepository struct {
	db *gorm.DB
}

func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

func (r *SignalRepository) Create(ctx context.Context, signal *models.SignalRecord) error {
	if signal == nil {
		return errors.New("signal cannot be nil")
	}
	return r.db.WithContext(ctx).Create(signal).Error
}

// FindRecent returns the newest signals for symbol, newest first.
func (r *SignalRepository) FindRecent(ctx context.Context, symbol string, limit int) ([]models.SignalRecord, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var signals []models.SignalRecord
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("signal_time DESC").
		Limit(limit).
		Find(&signals).Error
	return signals, err
}
