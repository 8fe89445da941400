package services_test

import (
	"context"
	"fmt"
	"sort"

	"cryptofolio/src/clients/coingecko"
	"cryptofolio/src/models"
)

// In-memory stores backing the service tests, implementing the repository
// interfaces the services depend on.

type fakeTransactionRepo struct {
	transactions []models.Transaction
	err          error
}

func (r *fakeTransactionRepo) GetByUserID(_ context.Context, userID int) ([]models.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) GetByCoinID(_ context.Context, userID int, coinID string) ([]models.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && t.CoinID == coinID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id int) (*models.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *models.Transaction) error {
	t.ID = len(r.transactions) + 1
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, t *models.Transaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == t.ID {
			r.transactions[i] = *t
			return nil
		}
	}
	return fmt.Errorf("transaction %d not found", t.ID)
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id int) error {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %d not found", id)
}

type fakeHoldingRepo struct {
	holdings map[string]*models.Holding
	nextID   int

	creates int
	updates int
	deletes int

	getErr   error
	writeErr error
}

func newFakeHoldingRepo() *fakeHoldingRepo {
	return &fakeHoldingRepo{holdings: make(map[string]*models.Holding)}
}

func holdingKey(userID int, coinID string) string {
	return fmt.Sprintf("%d:%s", userID, coinID)
}

func (r *fakeHoldingRepo) GetByUserID(_ context.Context, userID int) ([]models.Holding, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	var out []models.Holding
	for _, h := range r.holdings {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoinName < out[j].CoinName })
	return out, nil
}

func (r *fakeHoldingRepo) GetByCoinID(_ context.Context, userID int, coinID string) (*models.Holding, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	h, ok := r.holdings[holdingKey(userID, coinID)]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHoldingRepo) ListCoinIDs(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, h := range r.holdings {
		if !seen[h.CoinID] {
			seen[h.CoinID] = true
			out = append(out, h.CoinID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeHoldingRepo) Create(_ context.Context, h *models.Holding) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.nextID++
	h.ID = r.nextID
	copied := *h
	r.holdings[holdingKey(h.UserID, h.CoinID)] = &copied
	r.creates++
	return nil
}

func (r *fakeHoldingRepo) Update(_ context.Context, h *models.Holding) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	copied := *h
	r.holdings[holdingKey(h.UserID, h.CoinID)] = &copied
	r.updates++
	return nil
}

func (r *fakeHoldingRepo) Delete(_ context.Context, id int) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	for key, h := range r.holdings {
		if h.ID == id {
			delete(r.holdings, key)
			r.deletes++
			return nil
		}
	}
	return fmt.Errorf("holding %d not found", id)
}

func (r *fakeHoldingRepo) writes() int {
	return r.creates + r.updates + r.deletes
}

type fakePriceClient struct {
	prices map[string]float64
	err    error

	// When set, RefreshSimplePrices blocks until released.
	fetching chan struct{}
	release  chan struct{}
}

func (c *fakePriceClient) GetSimplePrices(ctx context.Context, coinIDs []string) (map[string]float64, error) {
	return c.RefreshSimplePrices(ctx, coinIDs)
}

func (c *fakePriceClient) RefreshSimplePrices(_ context.Context, _ []string) (map[string]float64, error) {
	if c.fetching != nil {
		close(c.fetching)
		c.fetching = nil
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.prices, nil
}

func (c *fakePriceClient) GetMarkets(_ context.Context, _, _ int) ([]coingecko.MarketCoin, error) {
	return nil, nil
}

func (c *fakePriceClient) GetCoinDetail(_ context.Context, _ string) (*coingecko.CoinDetail, error) {
	return nil, nil
}

func (c *fakePriceClient) SearchCoins(_ context.Context, _ string) (*coingecko.SearchResponse, error) {
	return nil, nil
}
