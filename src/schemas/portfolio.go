package schemas

// HoldingWithPrice joins one holding with its live market quote.
type HoldingWithPrice struct {
	Holding              HoldingResponse `json:"holding"`
	CurrentPrice         float64         `json:"currentPrice"`
	CurrentValue         float64         `json:"currentValue"`
	Investment           float64         `json:"investment"`
	ProfitLoss           float64         `json:"profitLoss"`
	ProfitLossPercentage float64         `json:"profitLossPercentage"`
}

type PortfolioResponse struct {
	Holdings        []HoldingWithPrice `json:"holdings"`
	TotalValue      float64            `json:"totalValue"`
	TotalProfitLoss float64            `json:"totalProfitLoss"`
	// PricesStale is true when the price source was unavailable and the
	// valuation degraded to zero quotes.
	PricesStale bool `json:"pricesStale"`
}
