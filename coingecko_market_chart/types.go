package coingecko_market_chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MarketChartParams represents parameters for market chart requests
type MarketChartParams struct {
	// ID is the coin id (required) - can be obtained from /coins/list
	ID string `json:"id"`

	// Currency to compare against (e.g., "usd", "eur", "btc")
	Currency string `json:"vs_currency"`

	// Days is the lookback window in days
	Days int `json:"days"`
}

// Validate validates the MarketChartParams
func (p *MarketChartParams) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("coin ID is required")
	}
	if strings.TrimSpace(p.Currency) == "" {
		return errors.New("vs_currency is required")
	}
	if p.Days <= 0 {
		return fmt.Errorf("invalid days parameter %d, must be a positive number", p.Days)
	}
	return nil
}

// CacheKey identifies the request for caching purposes
func (p MarketChartParams) CacheKey() string {
	return fmt.Sprintf("market_chart:%s:%s:%d", p.ID, p.Currency, p.Days)
}

// MarketChartData represents a single data point [timestamp, value]
type MarketChartData [2]float64

// Timestamp returns the point's time in milliseconds since epoch
func (d MarketChartData) Timestamp() int64 {
	return int64(d[0])
}

// Value returns the point's value
func (d MarketChartData) Value() float64 {
	return d[1]
}

// UnmarshalJSON accepts exactly two non-null numbers
func (d *MarketChartData) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("data point must be an array of numbers: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("data point must have 2 elements, got %d", len(raw))
	}
	if raw[0] == nil || raw[1] == nil {
		return errors.New("data point contains null")
	}
	d[0], d[1] = *raw[0], *raw[1]
	return nil
}

// MarketChartResponse represents the market chart API response structure
type MarketChartResponse struct {
	// Prices contains historical price data as [timestamp, price] pairs
	Prices []MarketChartData `json:"prices"`

	// MarketCaps contains historical market cap data as [timestamp, market_cap] pairs
	MarketCaps []MarketChartData `json:"market_caps"`

	// TotalVolumes contains historical volume data as [timestamp, total_volume] pairs
	TotalVolumes []MarketChartData `json:"total_volumes"`
}

// ParseMarketChartResponse decodes a response body. The prices key is required.
func ParseMarketChartResponse(body []byte) (*MarketChartResponse, error) {
	var resp MarketChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Prices == nil {
		return nil, errors.New("response has no prices")
	}
	if resp.MarketCaps != nil && len(resp.MarketCaps) != len(resp.Prices) {
		return nil, fmt.Errorf("market_caps has %d points, prices has %d", len(resp.MarketCaps), len(resp.Prices))
	}
	if resp.TotalVolumes != nil && len(resp.TotalVolumes) != len(resp.Prices) {
		return nil, fmt.Errorf("total_volumes has %d points, prices has %d", len(resp.TotalVolumes), len(resp.Prices))
	}
	return &resp, nil
}
