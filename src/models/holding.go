package models

import (
	"time"
)

// Holding is the denormalized current position for one (user, coin) pair.
// It is fully derived from the transaction history and only ever written
// by the reconcile service.
type Holding struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	CoinID     string    `db:"coin_id"`
	CoinSymbol string    `db:"coin_symbol"`
	CoinName   string    `db:"coin_name"`
	Amount     float64   `db:"amount"`
	AvgPrice   float64   `db:"avg_price"`
	OpenedAt   time.Time `db:"opened_at"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}
