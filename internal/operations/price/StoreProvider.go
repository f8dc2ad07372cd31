package price

import (
	"context"
	"fmt"

	"SmartMoneyAnalyzer/internal/models"
)

// PriceStore is the read side of the price repository.
type PriceStore interface {
	GetRecent(ctx context.Context, symbol, timeFrame string, limit int) ([]models.Price, error)
}

// StoreProvider serves series from previously ingested candles.
type StoreProvider struct {
	store PriceStore
}

func NewStoreProvider(store PriceStore) *StoreProvider {
	return &StoreProvider{store: store}
}

func (p *StoreProvider) GetSeries(ctx context.Context, symbol, timeframe string, limit int) (models.Series, error) {
	prices, err := p.store.GetRecent(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, fmt.Errorf("load stored %s %s prices: %w", symbol, timeframe, err)
	}
	return models.PricesToSeries(prices).Sorted(), nil
}
