package controllers

import (
	"context"

	"cryptofolio/src/schemas"
	"cryptofolio/src/services"
)

type PortfolioControllerI interface {
	GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
	RefreshPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error)
}

type PortfolioController struct {
	portfolioService services.PortfolioServiceI
}

func NewPortfolioController(portfolioService services.PortfolioServiceI) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService}
}

func (c *PortfolioController) GetPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	return c.portfolioService.GetPortfolio(ctx, userID)
}

func (c *PortfolioController) RefreshPortfolio(ctx context.Context, userID int) (*schemas.PortfolioResponse, error) {
	return c.portfolioService.RefreshPortfolio(ctx, userID)
}
