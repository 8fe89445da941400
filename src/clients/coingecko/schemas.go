package coingecko

// SimplePriceResponse maps coin id -> currency -> price, mirroring the
// /simple/price payload. Coins unknown upstream are simply absent.
type SimplePriceResponse map[string]map[string]float64

type MarketCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

type CoinDetail struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Name       string      `json:"name"`
	Image      *CoinImage  `json:"image"`
	MarketData *MarketData `json:"market_data"`
}

type CoinImage struct {
	Large string `json:"large"`
}

type MarketData struct {
	CurrentPrice   map[string]float64 `json:"current_price"`
	MarketCap      map[string]float64 `json:"market_cap"`
	TotalVolume    map[string]float64 `json:"total_volume"`
	PriceChange24h float64            `json:"price_change_percentage_24h"`
}

type SearchResponse struct {
	Coins []SearchCoin `json:"coins"`
}

type SearchCoin struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
}
