package coingecko_market_chart

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	cg "github.com/status-im/market-history/coingecko_common"
	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/metrics"
)

type IAPIClient interface {
	FetchMarketChart(ctx context.Context, params MarketChartParams) (*MarketChartResponse, error)
	Healthy() bool
}

type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *cg.HTTPClient
	successfulFetch atomic.Bool
}

func NewCoinGeckoClient(cfg *config.Config) *CoinGeckoClient {
	opts := cg.DefaultClientOptions()
	opts.LogPrefix = "CoinGecko-MarketChart"
	if cfg.MarketChart.ConnectionTimeout > 0 {
		opts.ConnectionTimeout = cfg.MarketChart.ConnectionTimeout
	}
	if cfg.MarketChart.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.MarketChart.RequestTimeout
	}

	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarketChart)

	return &CoinGeckoClient{
		config:     cfg,
		httpClient: cg.NewHTTPClient(opts, metricsWriter),
	}
}

func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchMarketChart performs a single GET for the daily chart of params.ID.
// Every failure is returned as a *FetchError.
func (c *CoinGeckoClient) FetchMarketChart(ctx context.Context, params MarketChartParams) (*MarketChartResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, newFetchError(KindInvalidParams, params.ID, err)
	}

	baseURL := cg.GetApiBaseUrl(c.config)
	request, err := NewMarketChartRequestBuilder(baseURL, params.ID).
		WithCurrency(params.Currency).
		WithDays(params.Days).
		Build(ctx)
	if err != nil {
		log.Printf("CoinGecko-MarketChart: Error building request for %s: %v", params.ID, err)
		return nil, newFetchError(KindInvalidParams, params.ID, err)
	}

	body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		var statusErr *cg.HTTPStatusError
		if errors.As(err, &statusErr) {
			return nil, &FetchError{
				Kind:       KindUpstreamStatus,
				Coin:       params.ID,
				StatusCode: statusErr.StatusCode,
				Err:        statusErr,
			}
		}
		return nil, newFetchError(KindTransport, params.ID, err)
	}

	resp, err := ParseMarketChartResponse(body)
	if err != nil {
		log.Printf("CoinGecko-MarketChart: Error parsing JSON response for %s: %v", params.ID, err)
		return nil, newFetchError(KindParse, params.ID, err)
	}

	log.Printf("CoinGecko-MarketChart: Fetched %d points for %s/%s in %.2fs",
		len(resp.Prices), params.ID, params.Currency, duration.Seconds())

	c.successfulFetch.Store(true)

	return resp, nil
}
