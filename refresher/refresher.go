package refresher

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/metrics"
	"github.com/status-im/market-history/scheduler"
)

// HistoryRefresher fetches a table upstream bypassing any cache
type HistoryRefresher interface {
	Refresh(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error)
}

// Result is the outcome for one watchlist entry
type Result struct {
	Params cmc.MarketChartParams
	Rows   int
	Err    error
}

// Refresher periodically refreshes every coin of the watchlist
type Refresher struct {
	history       HistoryRefresher
	config        config.RefresherConfig
	limiter       *rate.Limiter
	scheduler     *scheduler.Scheduler
	metricsWriter *metrics.MetricsWriter

	mu      sync.Mutex
	lastRun time.Time
}

// NewRefresher creates a refresher. The schedule is validated even when disabled.
func NewRefresher(history HistoryRefresher, cfg config.RefresherConfig) (*Refresher, error) {
	r := &Refresher{
		history:       history,
		config:        cfg,
		limiter:       newLimiter(cfg.RequestsPerMinute),
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceRefresher),
	}

	s, err := scheduler.New(cfg.Schedule, func(ctx context.Context) {
		r.RunNow(ctx)
	})
	if err != nil {
		return nil, err
	}
	r.scheduler = s

	return r, nil
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// Start implements core.Interface
func (r *Refresher) Start(ctx context.Context) error {
	if !r.config.Enabled {
		log.Printf("Refresher: disabled")
		return nil
	}
	log.Printf("Refresher: %d coin(s) on schedule %q, next run at %s",
		len(r.config.Watchlist), r.config.Schedule, r.scheduler.NextRun().Format(time.RFC3339))
	r.scheduler.Start(ctx, r.config.RunOnStart)
	return nil
}

// Stop implements core.Interface
func (r *Refresher) Stop() {
	r.scheduler.Stop()
}

// LastRun returns when the last cycle finished
func (r *Refresher) LastRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}

// RunNow refreshes every watchlist entry once. Failures of single entries are
// logged and reported in the results, they do not stop the cycle.
func (r *Refresher) RunNow(ctx context.Context) []Result {
	start := time.Now()
	results := make([]Result, len(r.config.Watchlist))

	workers := r.config.Workers
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range r.config.Watchlist {
		i := i
		params := cmc.MarketChartParams{ID: entry.Coin, Currency: entry.Currency, Days: entry.Days}
		results[i].Params = params

		g.Go(func() error {
			if err := r.limiter.Wait(ctx); err != nil {
				results[i].Err = err
				return nil
			}

			table, err := r.history.Refresh(ctx, params)
			if err != nil {
				log.Printf("Refresher: Failed to refresh %s/%s: %v", params.ID, params.Currency, err)
				r.metricsWriter.RecordFetchFailure(cmc.KindOf(err).String())
				results[i].Err = err
				return nil
			}
			results[i].Rows = table.Len()
			return nil
		})
	}

	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	r.mu.Lock()
	r.lastRun = time.Now()
	r.mu.Unlock()

	r.metricsWriter.RecordDataFetchCycle(time.Since(start))
	log.Printf("Refresher: Cycle finished, %d/%d coin(s) refreshed", len(results)-failed, len(results))

	return results
}
