package schemas

import "time"

type CreateTransactionRequest struct {
	CoinID     string  `json:"coinId"`
	CoinSymbol string  `json:"coinSymbol"`
	CoinName   string  `json:"coinName"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Price      float64 `json:"price"`
	Date       int64   `json:"date"`
	Notes      string  `json:"notes"`
}

type UpdateTransactionRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
	Date   int64   `json:"date"`
	Notes  string  `json:"notes"`
}

type TransactionResponse struct {
	ID         int       `json:"id"`
	CoinID     string    `json:"coinId"`
	CoinSymbol string    `json:"coinSymbol"`
	CoinName   string    `json:"coinName"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Price      float64   `json:"price"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes"`
	// Warning is set when the transaction persisted but the holding could
	// not be reconciled; the holding may be stale until the next mutation.
	Warning string `json:"warning,omitempty"`
}
