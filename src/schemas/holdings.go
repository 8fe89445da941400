package schemas

import "time"

type HoldingResponse struct {
	ID         int       `json:"id"`
	CoinID     string    `json:"coinId"`
	CoinSymbol string    `json:"coinSymbol"`
	CoinName   string    `json:"coinName"`
	Amount     float64   `json:"amount"`
	AvgPrice   float64   `json:"avgPrice"`
	OpenedAt   time.Time `json:"openedAt"`
	Notes      string    `json:"notes"`
}
