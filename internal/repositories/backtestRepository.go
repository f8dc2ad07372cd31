package repositories

import (
	"context"
	"errors"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BacktestRepository struct {
	db *gorm.DB
}

func NewBacktestRepository(db *gorm.DB) *BacktestRepository {
	return &BacktestRepository{db: db}
}

// Save stores a run together with its trades. An empty RunID is assigned.
func (r *BacktestRepository) Save(ctx context.Context, run *models.BacktestRun) error {
	if run == nil {
		return errors.New("backtest run cannot be nil")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	for i := range run.Trades {
		run.Trades[i].RunID = run.RunID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
}

func (r *BacktestRepository) FindByRunID(ctx context.Context, runID string) (*models.BacktestRun, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, errors.New("invalid run id")
	}

	var run models.BacktestRun
	err := r.db.WithContext(ctx).
		Preload("Trades").
		Where("run_id = ?", runID).
		First(&run).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Price{},
		&models.SignalRecord{},
		&models.BacktestRun{},
		&models.TradeRecord{},
	)
}
