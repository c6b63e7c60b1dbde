package coingecko_market_chart

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/metrics"
)

// Fetcher turns the daily market chart of a coin into a Table
type Fetcher struct {
	client        IAPIClient
	defaults      config.CoingeckoMarketChartFetcher
	location      *time.Location
	metricsWriter *metrics.MetricsWriter
}

// NewFetcher creates a Fetcher talking to CoinGecko
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	loc, err := cfg.MarketChart.LoadLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.MarketChart.Location, err)
	}
	return NewFetcherWithClient(NewCoinGeckoClient(cfg), cfg.MarketChart, loc), nil
}

// NewFetcherWithClient creates a Fetcher over an arbitrary client
func NewFetcherWithClient(client IAPIClient, defaults config.CoingeckoMarketChartFetcher, loc *time.Location) *Fetcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Fetcher{
		client:        client,
		defaults:      defaults,
		location:      loc,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceMarketChart),
	}
}

// Location returns the zone used for calendar dates
func (f *Fetcher) Location() *time.Location {
	return f.location
}

// WithDefaults fills empty fields of params from configuration
func (f *Fetcher) WithDefaults(params MarketChartParams) MarketChartParams {
	if params.ID == "" {
		params.ID = f.defaults.DefaultCoin
	}
	if params.Currency == "" {
		params.Currency = f.defaults.DefaultCurrency
	}
	if params.Days == 0 {
		params.Days = f.defaults.DefaultDays
	}
	return params
}

// Fetch returns a fresh table for params, or a *FetchError
func (f *Fetcher) Fetch(ctx context.Context, params MarketChartParams) (*Table, error) {
	start := time.Now()
	defer metrics.RecordFetchDuration(metrics.ServiceMarketChart, "fetch", start)

	params = f.WithDefaults(params)
	if err := params.Validate(); err != nil {
		return nil, f.fail(newFetchError(KindInvalidParams, params.ID, err))
	}

	resp, err := f.client.FetchMarketChart(ctx, params)
	if err != nil {
		if KindOf(err) == 0 {
			err = newFetchError(KindTransport, params.ID, err)
		}
		return nil, f.fail(err)
	}

	table := BuildTable(resp, f.location)
	table.Coin = params.ID
	table.Currency = params.Currency
	table.Days = params.Days

	if dropped := len(resp.Prices) - table.Len(); dropped > 0 {
		log.Printf("CoinGecko-MarketChart: Dropped %d duplicate date(s) for %s", dropped, params.ID)
	}
	f.metricsWriter.RecordTableRows(params.ID, params.Currency, table.Len())

	return table, nil
}

func (f *Fetcher) fail(err error) error {
	f.metricsWriter.RecordFetchFailure(KindOf(err).String())
	log.Printf("CoinGecko-MarketChart: Fetch failed: %v", err)
	return err
}

// Healthy reports whether at least one fetch has succeeded
func (f *Fetcher) Healthy() bool {
	return f.client.Healthy()
}
