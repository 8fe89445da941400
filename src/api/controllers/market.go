package controllers

import (
	"context"
	"time"

	"cryptofolio/src/clients/coingecko"
	"cryptofolio/src/utils"
)

type MarketControllerI interface {
	GetMarkets(ctx context.Context, page, perPage int) ([]coingecko.MarketCoin, error)
	GetCoinDetail(ctx context.Context, coinID string) (*coingecko.CoinDetail, error)
	SearchCoins(ctx context.Context, query string) (*coingecko.SearchResponse, error)
}

// MarketController proxies the market endpoints. The default overview page
// is memoized in-process since it is the same for every user.
type MarketController struct {
	client        coingecko.CoinGeckoServiceClientI
	marketsCache  *utils.Cache[[]coingecko.MarketCoin]
	marketsCached time.Duration
}

func NewMarketController(client coingecko.CoinGeckoServiceClientI) *MarketController {
	return &MarketController{
		client:        client,
		marketsCache:  utils.NewCache[[]coingecko.MarketCoin](),
		marketsCached: 60 * time.Second,
	}
}

func (c *MarketController) GetMarkets(ctx context.Context, page, perPage int) ([]coingecko.MarketCoin, error) {
	defaultPage := page <= 1 && (perPage <= 0 || perPage == 100)
	if defaultPage {
		if cached, ok := c.marketsCache.Get(); ok {
			return cached, nil
		}
	}

	markets, err := c.client.GetMarkets(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	if defaultPage {
		c.marketsCache.Set(markets, c.marketsCached)
	}
	return markets, nil
}

func (c *MarketController) GetCoinDetail(ctx context.Context, coinID string) (*coingecko.CoinDetail, error) {
	if coinID == "" {
		return nil, utils.BadRequest("missing coin id")
	}
	return c.client.GetCoinDetail(ctx, coinID)
}

func (c *MarketController) SearchCoins(ctx context.Context, query string) (*coingecko.SearchResponse, error) {
	if query == "" {
		return nil, utils.BadRequest("missing search query")
	}
	return c.client.SearchCoins(ctx, query)
}
