package models

// AssetQuote is the spot price and 24h change for a single asset, as served
// by the backend's market-data endpoint (CoinGecko simple-price shape).
type AssetQuote struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// MarketSnapshot maps an asset identifier (e.g. "bitcoin") to its quote.
// A nil snapshot means "not yet loaded". A missing key means the price is
// unknown for that asset; consumers must render a placeholder, never zero.
// Snapshots are replaced wholesale on each successful poll, never merged.
type MarketSnapshot map[string]AssetQuote

// Quote returns the quote for an asset and whether it is known.
func (s MarketSnapshot) Quote(asset string) (AssetQuote, bool) {
	if s == nil {
		return AssetQuote{}, false
	}
	q, ok := s[asset]
	return q, ok
}

// ForecastPoint is one day of a projected price path with confidence bands.
type ForecastPoint struct {
	Day   int     `json:"day"`
	Price float64 `json:"price"`
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// ForecastSeries is a price projection for a single asset. Replacing the
// series on an asset-selection change invalidates the previous series
// entirely; points from different assets are never mixed.
type ForecastSeries struct {
	Asset        string          `json:"coin_id"`
	CurrentPrice float64         `json:"current_price"`
	Points       []ForecastPoint `json:"forecast"`
}

// DefaultForecastAsset is the asset selected when the analytics view opens.
const DefaultForecastAsset = "bitcoin"

// DefaultMarketAssets are the assets polled for the market snapshot.
var DefaultMarketAssets = []string{"bitcoin", "ethereum", "solana"}
