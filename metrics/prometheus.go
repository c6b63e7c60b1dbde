package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchDurationHistogram tracks the duration of single upstream fetches
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fetch_duration_seconds",
			Help: "Time taken to fetch data from external APIs",
		},
		[]string{"service", "operation"},
	)
)

// RecordFetchDuration observes the time since start for a service operation
func RecordFetchDuration(service, operation string, start time.Time) {
	FetchDurationHistogram.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}
