package services

import (
	"sort"

	"cryptofolio/src/models"
)

type LedgerServiceI interface {
	Recalculate(transactions []models.Transaction) (amount, avgPrice float64)
}

// LedgerService replays a coin's transaction history to derive the current
// position. It is pure: no I/O, no shared state, safe for concurrent use.
type LedgerService struct{}

func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// Recalculate replays the given transactions in chronological order and
// returns the resulting amount and weighted-average price.
//
// A BUY blends its price into the running average proportionally to its
// amount. A SELL only reduces the amount; the average price is kept until
// the next BUY re-establishes it. The input need not be sorted; ties on
// date keep their relative order.
func (s *LedgerService) Recalculate(transactions []models.Transaction) (float64, float64) {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var amount, avgPrice float64
	for _, tx := range sorted {
		if tx.Type == models.TransactionTypeBuy {
			totalCost := amount*avgPrice + tx.Amount*tx.Price
			amount += tx.Amount
			if amount > 0 {
				avgPrice = totalCost / amount
			}
		} else {
			amount -= tx.Amount
		}
	}
	return amount, avgPrice
}
