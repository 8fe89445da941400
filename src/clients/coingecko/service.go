package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"cryptofolio/src/config"
	"cryptofolio/src/utils"
	"cryptofolio/src/utils/requests"
	redis_utils "cryptofolio/src/utils/redis"
)

type CoinGeckoServiceClientI interface {
	GetSimplePrices(ctx context.Context, coinIDs []string) (map[string]float64, error)
	RefreshSimplePrices(ctx context.Context, coinIDs []string) (map[string]float64, error)
	GetMarkets(ctx context.Context, page, perPage int) ([]MarketCoin, error)
	GetCoinDetail(ctx context.Context, coinID string) (*CoinDetail, error)
	SearchCoins(ctx context.Context, query string) (*SearchResponse, error)
}

// CoinGeckoServiceClient talks to the CoinGecko v3 API. Simple price
// lookups go through Redis with a short TTL to stay under the public rate
// limit; the cache is optional and the client works without it.
type CoinGeckoServiceClient struct {
	API      *requests.ExternalAPIService
	BaseURL  string
	Currency string

	cache    *redis_utils.RedisHandler
	cacheTTL time.Duration
}

// NewClient creates a new instance of CoinGeckoServiceClient
func NewClient(cfg *config.Config, cache *redis_utils.RedisHandler) *CoinGeckoServiceClient {
	currency := cfg.ExternalClients.CoinGecko.Currency
	if currency == "" {
		currency = "usd"
	}
	ttl := time.Duration(cfg.ExternalClients.CoinGecko.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CoinGeckoServiceClient{
		API:      requests.NewExternalAPIService(),
		BaseURL:  cfg.ExternalClients.CoinGecko.BaseURL,
		Currency: currency,
		cache:    cache,
		cacheTTL: ttl,
	}
}

// GetSimplePrices returns the current quote per coin id in the configured
// currency. Coins unknown upstream are absent from the result; that is not
// an error.
func (c *CoinGeckoServiceClient) GetSimplePrices(ctx context.Context, coinIDs []string) (map[string]float64, error) {
	if len(coinIDs) == 0 {
		return map[string]float64{}, nil
	}

	key := c.priceCacheKey(coinIDs)
	if c.cache != nil {
		var cached map[string]float64
		if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	return c.RefreshSimplePrices(ctx, coinIDs)
}

// RefreshSimplePrices bypasses the cache, fetches fresh quotes and stores
// them back.
func (c *CoinGeckoServiceClient) RefreshSimplePrices(ctx context.Context, coinIDs []string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(coinIDs, ","))
	params.Set("vs_currencies", c.Currency)

	var response SimplePriceResponse
	if err := c.get(ctx, c.BaseURL+"/simple/price", params, &response); err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(response))
	for coinID, quotes := range response {
		if price, ok := quotes[c.Currency]; ok {
			prices[coinID] = price
		}
	}

	if c.cache != nil {
		// Cache failures only cost us the next upstream call.
		_ = c.cache.Set(ctx, c.priceCacheKey(coinIDs), prices, c.cacheTTL)
	}
	return prices, nil
}

// GetMarkets fetches the market overview ordered by market cap.
func (c *CoinGeckoServiceClient) GetMarkets(ctx context.Context, page, perPage int) ([]MarketCoin, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 100
	}

	params := url.Values{}
	params.Set("vs_currency", c.Currency)
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("sparkline", "false")

	var markets []MarketCoin
	if err := c.get(ctx, c.BaseURL+"/coins/markets", params, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// GetCoinDetail fetches market data for a single coin.
func (c *CoinGeckoServiceClient) GetCoinDetail(ctx context.Context, coinID string) (*CoinDetail, error) {
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")

	var detail CoinDetail
	if err := c.get(ctx, fmt.Sprintf("%s/coins/%s", c.BaseURL, url.PathEscape(coinID)), params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchCoins queries the coin search endpoint.
func (c *CoinGeckoServiceClient) SearchCoins(ctx context.Context, query string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	var result SearchResponse
	if err := c.get(ctx, c.BaseURL+"/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *CoinGeckoServiceClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	resp, err := c.API.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return utils.NewHTTPError(resp.StatusCode, "coingecko: "+resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(responseBody, out)
}

func (c *CoinGeckoServiceClient) priceCacheKey(coinIDs []string) string {
	sorted := make([]string, len(coinIDs))
	copy(sorted, coinIDs)
	sort.Strings(sorted)
	return "prices:" + redis_utils.CacheKey(append(sorted, c.Currency)...)
}
