package services

import (
	"context"
	"net/http"
	"sync"

	"cryptofolio/src/clients/coingecko"
	"cryptofolio/src/models"
	"cryptofolio/src/repositories"
	"cryptofolio/src/schemas"
	"cryptofolio/src/utils"
)

type PortfolioServiceI interface {
	GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
	RefreshPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
}

// PortfolioService is the read-only valuation layer: it joins holdings
// with live quotes and computes profit/loss. It contains no ledger rules.
type PortfolioService struct {
	holdingRepository repositories.HoldingRepository
	priceClient       coingecko.CoinGeckoServiceClientI

	refreshMutex sync.Mutex
	refreshing   map[int]bool
}

func NewPortfolioService(holdingRepository repositories.HoldingRepository, priceClient coingecko.CoinGeckoServiceClientI) *PortfolioService {
	return &PortfolioService{
		holdingRepository: holdingRepository,
		priceClient:       priceClient,
		refreshing:        make(map[int]bool),
	}
}

// GetPortfolio values all holdings of the user against current prices.
// When the price source is partially or fully unavailable the missing
// quotes degrade to zero and PricesStale is set; holdings still render.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	return s.portfolio(ctx, userID, s.priceClient.GetSimplePrices)
}

// RefreshPortfolio forces fresh quotes, skipping the price cache. Only one
// refresh per user runs at a time; overlapping calls are rejected to avoid
// redundant upstream requests.
func (s *PortfolioService) RefreshPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	if !s.beginRefresh(userID) {
		return nil, utils.NewHTTPError(http.StatusTooManyRequests, "price refresh already in progress")
	}
	defer s.endRefresh(userID)

	return s.portfolio(ctx, userID, s.priceClient.RefreshSimplePrices)
}

func (s *PortfolioService) portfolio(ctx context.Context, userID int, fetchPrices func(context.Context, []string) (map[string]float64, error)) (*schemas.PortfolioResponse, error) {
	holdings, err := s.holdingRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := &schemas.PortfolioResponse{Holdings: make([]schemas.HoldingWithPrice, 0, len(holdings))}
	if len(holdings) == 0 {
		return response, nil
	}

	coinIDs := make([]string, 0, len(holdings))
	for _, h := range holdings {
		coinIDs = append(coinIDs, h.CoinID)
	}

	prices, err := fetchPrices(ctx, coinIDs)
	if err != nil {
		// Holdings still render; every quote degrades to zero.
		utils.LoggerFromContext(ctx).WithError(err).Warn("price source unavailable, rendering holdings without quotes")
		response.PricesStale = true
		for _, h := range holdings {
			response.Holdings = append(response.Holdings, schemas.HoldingWithPrice{Holding: toHoldingResponse(h)})
		}
		return response, nil
	}

	for _, h := range holdings {
		valued := valueHolding(h, prices[h.CoinID])
		response.Holdings = append(response.Holdings, valued)
		response.TotalValue += valued.CurrentValue
		response.TotalProfitLoss += valued.ProfitLoss
	}
	return response, nil
}

func valueHolding(h models.Holding, price float64) schemas.HoldingWithPrice {
	currentValue := h.Amount * price
	investment := h.Amount * h.AvgPrice
	profitLoss := currentValue - investment

	var profitLossPercentage float64
	if investment > 0 {
		profitLossPercentage = (profitLoss / investment) * 100
	}

	return schemas.HoldingWithPrice{
		Holding:              toHoldingResponse(h),
		CurrentPrice:         price,
		CurrentValue:         currentValue,
		Investment:           investment,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: profitLossPercentage,
	}
}

func toHoldingResponse(h models.Holding) schemas.HoldingResponse {
	return schemas.HoldingResponse{
		ID:         h.ID,
		CoinID:     h.CoinID,
		CoinSymbol: h.CoinSymbol,
		CoinName:   h.CoinName,
		Amount:     h.Amount,
		AvgPrice:   h.AvgPrice,
		OpenedAt:   h.OpenedAt,
		Notes:      h.Notes,
	}
}

func (s *PortfolioService) beginRefresh(userID int) bool {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()
	if s.refreshing[userID] {
		return false
	}
	s.refreshing[userID] = true
	return true
}

func (s *PortfolioService) endRefresh(userID int) {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()
	delete(s.refreshing, userID)
}
