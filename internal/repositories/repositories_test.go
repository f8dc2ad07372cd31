package repositories

import (
	"context"
	"testing"
	"time"

	"SmartMoneyAnalyzer/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetRecentReturnsOldestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	newer := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "symbol", "time_frame", "open_time", "close"}).
		AddRow(2, "BTCUSDT", "1h", newer, 101.0).
		AddRow(1, "BTCUSDT", "1h", older, 100.0)

	mock.ExpectQuery(`SELECT \* FROM "prices" WHERE symbol = \$1 AND time_frame = \$2 ORDER BY open_time DESC LIMIT`).
		WillReturnRows(rows)

	prices, err := repo.GetRecent(context.Background(), "BTCUSDT", "1h", 2)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, older, prices[0].OpenTime)
	assert.Equal(t, 101.0, prices[1].Close)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentRejectsBadArguments(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewPriceRepository(db)

	_, err := repo.GetRecent(context.Background(), "", "1h", 10)
	assert.Error(t, err)
	_, err = repo.GetRecent(context.Background(), "BTCUSDT", "1h", 0)
	assert.Error(t, err)
}

func TestLatestPriceNotFoundIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "prices" WHERE symbol = \$1 AND time_frame = \$2 ORDER BY open_time DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	price, err := repo.GetLatestPriceByTimeFrame(context.Background(), "BTCUSDT", "4h")
	require.NoError(t, err)
	assert.Nil(t, price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSignal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSignalRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "signals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	signal := &models.SignalRecord{
		Symbol:     "EURUSD",
		Timeframe:  "1h",
		Direction:  "long",
		Grade:      "A",
		Score:      70,
		EntryPrice: 1.1,
		StopLoss:   1.098,
		TakeProfit: 1.103,
		SignalTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), signal))
	assert.Equal(t, uint(7), signal.ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, repo.Create(context.Background(), nil))
}

func TestFindRecentSignals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSignalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "symbol", "direction", "grade", "signal_time"}).
		AddRow(9, "EURUSD", "short", "B", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)).
		AddRow(8, "EURUSD", "long", "A", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT \* FROM "signals" WHERE symbol = \$1 ORDER BY signal_time DESC LIMIT`).
		WillReturnRows(rows)

	signals, err := repo.FindRecent(context.Background(), "EURUSD", 2)
	require.NoError(t, err)
	require.Len(t, signals, 2)
	assert.Equal(t, uint(9), signals[0].ID)
	assert.Equal(t, "long", signals[1].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = repo.FindRecent(context.Background(), "", 2)
	assert.Error(t, err)
	_, err = repo.FindRecent(context.Background(), "EURUSD", 0)
	assert.Error(t, err)
}

func TestFindByRunIDValidatesID(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewBacktestRepository(db)

	_, err := repo.FindByRunID(context.Background(), "not-a-uuid")
	assert.Error(t, err)
	assert.Error(t, repo.Save(context.Background(), nil))
}
