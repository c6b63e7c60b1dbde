package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/status-im/market-history/cache"
	cmc "github.com/status-im/market-history/coingecko_market_chart"
	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/metrics"
	"github.com/status-im/market-history/recorder"
)

// TableFetcher produces a fresh table per call
type TableFetcher interface {
	Fetch(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error)
	WithDefaults(params cmc.MarketChartParams) cmc.MarketChartParams
	Location() *time.Location
	Healthy() bool
}

// Service serves daily market history from cache, upstream and storage
type Service struct {
	fetcher       TableFetcher
	cache         cache.Cache
	recorder      recorder.Recorder
	config        config.HistoryConfig
	metricsWriter *metrics.MetricsWriter
}

// NewService creates a history service. A nil recorder disables persistence.
func NewService(fetcher TableFetcher, cache cache.Cache, rec recorder.Recorder, cfg config.HistoryConfig) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{
		fetcher:       fetcher,
		cache:         cache,
		recorder:      rec,
		config:        cfg,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceHistory),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.fetcher == nil {
		return fmt.Errorf("history service: fetcher is required")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if err := s.recorder.Close(); err != nil {
		log.Printf("HistoryService: Error closing recorder: %v", err)
	}
}

// Healthy reports whether the upstream has answered at least once
func (s *Service) Healthy() bool {
	return s.fetcher.Healthy()
}

// Defaults returns params with empty fields filled from configuration
func (s *Service) Defaults(params cmc.MarketChartParams) cmc.MarketChartParams {
	return s.fetcher.WithDefaults(normalize(params))
}

// History returns the table for params. Cached tables are decoded per call so
// the caller always owns the result.
func (s *Service) History(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	params = s.Defaults(params)

	if s.cache == nil || s.config.CacheTTL <= 0 {
		return s.fetchAndRecord(ctx, params)
	}

	data, hit, err := s.cache.GetOrLoad(params.CacheKey(), func() ([]byte, error) {
		table, err := s.fetchAndRecord(ctx, params)
		if err != nil {
			return nil, err
		}
		return json.Marshal(table)
	}, s.config.CacheTTL)
	s.metricsWriter.RecordCacheLookup(hit)
	if err != nil {
		return nil, err
	}
	if !hit {
		s.metricsWriter.RecordCacheSize(s.cache.Len())
	}

	table, err := cmc.DecodeTable(data, s.fetcher.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached table %s: %w", params.CacheKey(), err)
	}
	return table, nil
}

// Refresh fetches params upstream regardless of the cache and stores the result
func (s *Service) Refresh(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	params = s.Defaults(params)

	table, err := s.fetchAndRecord(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.config.CacheTTL > 0 {
		data, err := json.Marshal(table)
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		s.cache.Set(params.CacheKey(), data, s.config.CacheTTL)
		s.metricsWriter.RecordCacheSize(s.cache.Len())
	}
	return table, nil
}

// Stored returns persisted rows for coin and currency between from and to inclusive
func (s *Service) Stored(ctx context.Context, coin, currency string, from, to time.Time) (*cmc.Table, error) {
	params := s.Defaults(cmc.MarketChartParams{ID: coin, Currency: currency})
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from.Format(cmc.DateFormat), to.Format(cmc.DateFormat))
	}

	rows, err := s.recorder.ListRows(ctx, params.ID, params.Currency, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored rows for %s/%s: %w", params.ID, params.Currency, err)
	}

	table := &cmc.Table{Coin: params.ID, Currency: params.Currency, Rows: rows}
	for _, row := range rows {
		table.HasMarketCaps = table.HasMarketCaps || row.MarketCap != nil
		table.HasTotalVolumes = table.HasTotalVolumes || row.TotalVolume != nil
	}
	return table, nil
}

func (s *Service) fetchAndRecord(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	table, err := s.fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	n, err := s.recorder.RecordTable(ctx, params.ID, params.Currency, table)
	if err != nil {
		log.Printf("HistoryService: Failed to record %s/%s: %v", params.ID, params.Currency, err)
	} else if n > 0 {
		s.metricsWriter.RecordRecordedRows(n)
	}

	return table, nil
}

func normalize(params cmc.MarketChartParams) cmc.MarketChartParams {
	params.ID = strings.ToLower(strings.TrimSpace(params.ID))
	params.Currency = strings.ToLower(strings.TrimSpace(params.Currency))
	return params
}
