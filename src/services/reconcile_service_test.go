package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cryptofolio/src/models"
	"cryptofolio/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconcileService(transactions *fakeTransactionRepo, holdings *fakeHoldingRepo) *services.ReconcileService {
	return services.NewReconcileService(transactions, holdings, services.NewLedgerService())
}

func TestReconcileService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates holding from open history", func(t *testing.T) {
		transactions := &fakeTransactionRepo{transactions: []models.Transaction{
			{ID: 1, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeBuy, Amount: 10, Price: 20000, Date: day(1)},
			{ID: 2, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeBuy, Amount: 10, Price: 30000, Date: day(2)},
			{ID: 3, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeSell, Amount: 5, Price: 40000, Date: day(3)},
		}}
		holdings := newFakeHoldingRepo()
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin")
		require.NoError(t, err)

		holding, err := holdings.GetByCoinID(ctx, 1, "bitcoin")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, 15.0, holding.Amount)
		assert.Equal(t, 25000.0, holding.AvgPrice)
		assert.Equal(t, "BTC", holding.CoinSymbol)
		assert.Equal(t, "Calculated from history", holding.Notes)
		assert.False(t, holding.OpenedAt.IsZero())
	})

	t.Run("updates existing holding in place", func(t *testing.T) {
		transactions := &fakeTransactionRepo{transactions: []models.Transaction{
			{ID: 1, UserID: 1, CoinID: "ethereum", Type: models.TransactionTypeBuy, Amount: 4, Price: 1000, Date: day(1)},
		}}
		holdings := newFakeHoldingRepo()
		openedAt := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, holdings.Create(ctx, &models.Holding{
			UserID: 1, CoinID: "ethereum", CoinSymbol: "ETH", CoinName: "Ethereum",
			Amount: 99, AvgPrice: 5, OpenedAt: openedAt,
		}))
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "ethereum", "ETH", "Ethereum")
		require.NoError(t, err)

		holding, err := holdings.GetByCoinID(ctx, 1, "ethereum")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, 1, holding.ID)
		assert.Equal(t, 4.0, holding.Amount)
		assert.Equal(t, 1000.0, holding.AvgPrice)
		assert.Equal(t, openedAt, holding.OpenedAt)
		assert.Equal(t, 1, holdings.updates)
	})

	t.Run("deletes holding when position fully closes", func(t *testing.T) {
		transactions := &fakeTransactionRepo{transactions: []models.Transaction{
			{ID: 1, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeBuy, Amount: 5, Price: 10, Date: day(1)},
			{ID: 2, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeSell, Amount: 5, Price: 12, Date: day(2)},
		}}
		holdings := newFakeHoldingRepo()
		require.NoError(t, holdings.Create(ctx, &models.Holding{
			UserID: 1, CoinID: "bitcoin", Amount: 5, AvgPrice: 10,
		}))
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin")
		require.NoError(t, err)

		holding, err := holdings.GetByCoinID(ctx, 1, "bitcoin")
		require.NoError(t, err)
		assert.Nil(t, holding)
		assert.Equal(t, 1, holdings.deletes)
	})

	t.Run("closed position with no holding is a no-op", func(t *testing.T) {
		transactions := &fakeTransactionRepo{}
		holdings := newFakeHoldingRepo()
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin")
		require.NoError(t, err)
		assert.Equal(t, 0, holdings.writes())
	})

	t.Run("negative history counts as closed", func(t *testing.T) {
		transactions := &fakeTransactionRepo{transactions: []models.Transaction{
			{ID: 1, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeBuy, Amount: 2, Price: 10, Date: day(1)},
			{ID: 2, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeSell, Amount: 5, Price: 10, Date: day(2)},
		}}
		holdings := newFakeHoldingRepo()
		require.NoError(t, holdings.Create(ctx, &models.Holding{
			UserID: 1, CoinID: "bitcoin", Amount: 2, AvgPrice: 10,
		}))
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin")
		require.NoError(t, err)

		holding, err := holdings.GetByCoinID(ctx, 1, "bitcoin")
		require.NoError(t, err)
		assert.Nil(t, holding)
	})

	t.Run("is idempotent", func(t *testing.T) {
		transactions := &fakeTransactionRepo{transactions: []models.Transaction{
			{ID: 1, UserID: 1, CoinID: "bitcoin", Type: models.TransactionTypeBuy, Amount: 3, Price: 100, Date: day(1)},
		}}
		holdings := newFakeHoldingRepo()
		reconciler := newReconcileService(transactions, holdings)

		require.NoError(t, reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin"))
		writesAfterFirst := holdings.writes()
		require.NoError(t, reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin"))

		// The second run rewrites the same derived values but changes nothing.
		holding, err := holdings.GetByCoinID(ctx, 1, "bitcoin")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, 3.0, holding.Amount)
		assert.Equal(t, 100.0, holding.AvgPrice)
		assert.Equal(t, 1, writesAfterFirst)
		assert.Equal(t, 0, holdings.deletes)
	})

	t.Run("store failure surfaces as reconcile error", func(t *testing.T) {
		transactions := &fakeTransactionRepo{err: errors.New("connection refused")}
		holdings := newFakeHoldingRepo()
		reconciler := newReconcileService(transactions, holdings)

		err := reconciler.Reconcile(ctx, 1, "bitcoin", "BTC", "Bitcoin")
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrReconcileFailed)
	})
}
