package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_history_"

// Service constants
const (
	ServiceMarketChart = "market-chart"
	ServiceHistory     = "history"
	ServiceRefresher   = "refresher"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~3 (success, error, timeout)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Service-specific Coingecko request counter
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Fetch failures by error kind
	// Cardinality: ~12 (3 services × 4 kinds)
	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fetch_failures_total",
			Help: "Number of failed market chart fetches by error kind",
		},
		[]string{"service", "kind"},
	)

	// Rows in the last table produced per coin
	// Cardinality: number of distinct coin/currency pairs requested
	TableRowsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "table_rows",
			Help: "Number of rows in the most recent table for a coin",
		},
		[]string{"coin", "currency"},
	)

	// Data fetch cycle duration per service
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full data fetch cycle",
		},
		[]string{"service"},
	)

	// Cache lookups by result
	// Cardinality: 2 (hit, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Number of history cache lookups by result",
		},
		[]string{"service", "result"},
	)

	// Service cache size
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of encoded tables held in the service cache",
		},
		[]string{"service"},
	)

	// Rows written to the recorder
	RecordedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "recorded_rows_total",
			Help: "Number of rows upserted into persistent storage",
		},
		[]string{"service"},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordFetchFailure counts a failed fetch by error kind
func (mw *MetricsWriter) RecordFetchFailure(kind string) {
	FetchFailuresTotal.WithLabelValues(mw.serviceName, kind).Inc()
	log.Printf("Metrics: %s fetch failure recorded with kind %s", mw.serviceName, kind)
}

// RecordTableRows records the size of the latest table for a coin
func (mw *MetricsWriter) RecordTableRows(coin, currency string, rows int) {
	TableRowsGauge.WithLabelValues(coin, currency).Set(float64(rows))
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss
func (mw *MetricsWriter) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(mw.serviceName, result).Inc()
}

// RecordCacheSize records the number of items in service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordRecordedRows counts rows upserted into storage
func (mw *MetricsWriter) RecordRecordedRows(n int64) {
	RecordedRowsTotal.WithLabelValues(mw.serviceName).Add(float64(n))
}

// Implement IHttpStatusHandler interface for MetricsWriter
// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}
