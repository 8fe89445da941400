package models

import (
	"time"
)

const (
	TransactionTypeBuy  = "BUY"
	TransactionTypeSell = "SELL"
)

type Transaction struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	CoinID     string    `db:"coin_id"`
	CoinSymbol string    `db:"coin_symbol"`
	CoinName   string    `db:"coin_name"`
	Type       string    `db:"type"`
	Amount     float64   `db:"amount"`
	Price      float64   `db:"price"`
	Date       time.Time `db:"date"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}
