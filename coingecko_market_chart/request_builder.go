package coingecko_market_chart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	cg "github.com/status-im/market-history/coingecko_common"
)

const (
	MARKET_CHART_API_PATH_TEMPLATE = "/api/v3/coins/%s/market_chart"

	// Only daily granularity is supported
	dailyInterval = "daily"
)

type MarketChartRequestBuilder struct {
	builder *cg.CoingeckoRequestBuilder
	coinID  string
}

func NewMarketChartRequestBuilder(baseURL, coinID string) *MarketChartRequestBuilder {
	apiPath := fmt.Sprintf(MARKET_CHART_API_PATH_TEMPLATE, url.PathEscape(coinID))

	rb := &MarketChartRequestBuilder{
		builder: cg.NewCoingeckoRequestBuilder(baseURL, apiPath),
		coinID:  coinID,
	}
	rb.builder.With("interval", dailyInterval)

	return rb
}

func (rb *MarketChartRequestBuilder) WithCurrency(currency string) *MarketChartRequestBuilder {
	rb.builder.WithCurrency(currency)
	return rb
}

func (rb *MarketChartRequestBuilder) WithDays(days int) *MarketChartRequestBuilder {
	rb.builder.With("days", strconv.Itoa(days))
	return rb
}

func (rb *MarketChartRequestBuilder) BuildURL() string {
	return rb.builder.BuildURL()
}

func (rb *MarketChartRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	return rb.builder.Build(ctx)
}
