package controllers

import (
	"context"

	"cryptofolio/src/repositories"
	"cryptofolio/src/schemas"
)

type HoldingsControllerI interface {
	GetHoldings(ctx context.Context, userID int) ([]schemas.HoldingResponse, error)
}

type HoldingsController struct {
	holdingRepository repositories.HoldingRepository
}

func NewHoldingsController(holdingRepository repositories.HoldingRepository) *HoldingsController {
	return &HoldingsController{holdingRepository: holdingRepository}
}

func (c *HoldingsController) GetHoldings(ctx context.Context, userID int) ([]schemas.HoldingResponse, error) {
	holdings, err := c.holdingRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		responses = append(responses, schemas.HoldingResponse{
			ID:         h.ID,
			CoinID:     h.CoinID,
			CoinSymbol: h.CoinSymbol,
			CoinName:   h.CoinName,
			Amount:     h.Amount,
			AvgPrice:   h.AvgPrice,
			OpenedAt:   h.OpenedAt,
			Notes:      h.Notes,
		})
	}
	return responses, nil
}
