package services_test

import (
	"testing"
	"time"

	"cryptofolio/src/models"
	"cryptofolio/src/services"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func buy(amount, price float64, date time.Time) models.Transaction {
	return models.Transaction{Type: models.TransactionTypeBuy, Amount: amount, Price: price, Date: date}
}

func sell(amount, price float64, date time.Time) models.Transaction {
	return models.Transaction{Type: models.TransactionTypeSell, Amount: amount, Price: price, Date: date}
}

func TestLedgerServiceRecalculate(t *testing.T) {
	ledger := services.NewLedgerService()

	t.Run("empty history yields zero position", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate(nil)
		assert.Equal(t, 0.0, amount)
		assert.Equal(t, 0.0, avgPrice)
	})

	t.Run("buys only compute weighted average", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(10, 20000, day(1)),
			buy(10, 30000, day(2)),
		})
		assert.Equal(t, 20.0, amount)
		assert.Equal(t, 25000.0, avgPrice)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(10, 30000, day(2)),
			buy(10, 20000, day(1)),
		})
		assert.Equal(t, 20.0, amount)
		assert.Equal(t, 25000.0, avgPrice)
	})

	t.Run("sell never changes average price", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(10, 2, day(1)),
			sell(4, 3, day(2)),
		})
		assert.Equal(t, 6.0, amount)
		assert.Equal(t, 2.0, avgPrice)
	})

	t.Run("sell after full close keeps last average", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(5, 10, day(1)),
			sell(5, 12, day(2)),
		})
		assert.Equal(t, 0.0, amount)
		assert.Equal(t, 10.0, avgPrice)
	})

	t.Run("buy after close re-establishes average", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(5, 10, day(1)),
			sell(5, 12, day(2)),
			buy(2, 40, day(3)),
		})
		assert.Equal(t, 2.0, amount)
		assert.Equal(t, 40.0, avgPrice)
	})

	t.Run("replays full history chronologically", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			sell(5, 40000, day(3)),
			buy(10, 20000, day(1)),
			buy(10, 30000, day(2)),
		})
		assert.Equal(t, 15.0, amount)
		assert.Equal(t, 25000.0, avgPrice)
	})

	t.Run("oversold history goes negative without error", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			buy(2, 10, day(1)),
			sell(5, 10, day(2)),
		})
		assert.Equal(t, -3.0, amount)
		assert.Equal(t, 10.0, avgPrice)
	})

	t.Run("same-timestamp transactions keep insertion order", func(t *testing.T) {
		amount, avgPrice := ledger.Recalculate([]models.Transaction{
			{ID: 1, Type: models.TransactionTypeBuy, Amount: 10, Price: 100, Date: day(1)},
			{ID: 2, Type: models.TransactionTypeSell, Amount: 10, Price: 100, Date: day(1)},
			{ID: 3, Type: models.TransactionTypeBuy, Amount: 4, Price: 50, Date: day(1)},
		})
		assert.Equal(t, 4.0, amount)
		assert.Equal(t, 50.0, avgPrice)
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		transactions := []models.Transaction{
			buy(1, 2, day(2)),
			buy(3, 4, day(1)),
		}
		ledger.Recalculate(transactions)
		assert.Equal(t, day(2), transactions[0].Date)
	})
}
