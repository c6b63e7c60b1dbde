package refresher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
	"github.com/status-im/market-history/config"
)

// MockHistory implements HistoryRefresher for testing
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Refresh(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	args := m.Called(ctx, params)
	if table := args.Get(0); table != nil {
		return table.(*cmc.Table), args.Error(1)
	}
	return nil, args.Error(1)
}

func tableWithRows(n int) *cmc.Table {
	return &cmc.Table{Rows: make([]cmc.Row, n)}
}

func createTestConfig(watchlist ...config.WatchlistEntry) config.RefresherConfig {
	cfg := config.GetDefaultRefresherConfig()
	cfg.Enabled = true
	cfg.RequestsPerMinute = 0
	cfg.Watchlist = watchlist
	return cfg
}

func TestRunNow_RefreshesWatchlist(t *testing.T) {
	history := &MockHistory{}
	history.On("Refresh", mock.Anything, cmc.MarketChartParams{ID: "nexo", Currency: "eur", Days: 30}).Return(tableWithRows(31), nil)
	history.On("Refresh", mock.Anything, cmc.MarketChartParams{ID: "bitcoin"}).Return(tableWithRows(30), nil)

	r, err := NewRefresher(history, createTestConfig(
		config.WatchlistEntry{Coin: "nexo", Currency: "eur", Days: 30},
		config.WatchlistEntry{Coin: "bitcoin"},
	))
	require.NoError(t, err)

	results := r.RunNow(context.Background())

	require.Len(t, results, 2)
	assert.Equal(t, 31, results[0].Rows)
	assert.Equal(t, 30, results[1].Rows)
	assert.NoError(t, results[0].Err)
	assert.False(t, r.LastRun().IsZero())
	history.AssertExpectations(t)
}

func TestRunNow_FailureDoesNotStopCycle(t *testing.T) {
	upstreamErr := &cmc.FetchError{Kind: cmc.KindUpstreamStatus, Coin: "broken", StatusCode: 404}

	history := &MockHistory{}
	history.On("Refresh", mock.Anything, cmc.MarketChartParams{ID: "broken"}).Return(nil, upstreamErr)
	history.On("Refresh", mock.Anything, cmc.MarketChartParams{ID: "nexo"}).Return(tableWithRows(5), nil)

	r, err := NewRefresher(history, createTestConfig(
		config.WatchlistEntry{Coin: "broken"},
		config.WatchlistEntry{Coin: "nexo"},
	))
	require.NoError(t, err)

	results := r.RunNow(context.Background())

	require.Len(t, results, 2)
	assert.True(t, errors.Is(results[0].Err, cmc.ErrUpstreamStatus))
	assert.Equal(t, 5, results[1].Rows)
}

type concurrencyProbe struct {
	mu      sync.Mutex
	current int
	max     int
}

func (p *concurrencyProbe) Refresh(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	p.mu.Lock()
	p.current++
	if p.current > p.max {
		p.max = p.current
	}
	p.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	p.mu.Lock()
	p.current--
	p.mu.Unlock()
	return tableWithRows(1), nil
}

func TestRunNow_RespectsWorkerLimit(t *testing.T) {
	probe := &concurrencyProbe{}
	cfg := createTestConfig()
	cfg.Workers = 2
	for i := 0; i < 8; i++ {
		cfg.Watchlist = append(cfg.Watchlist, config.WatchlistEntry{Coin: "coin"})
	}

	r, err := NewRefresher(probe, cfg)
	require.NoError(t, err)
	r.RunNow(context.Background())

	assert.LessOrEqual(t, probe.max, 2)
	assert.GreaterOrEqual(t, probe.max, 1)
}

type countingHistory struct {
	calls atomic.Int32
}

func (c *countingHistory) Refresh(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error) {
	c.calls.Add(1)
	return tableWithRows(1), nil
}

func TestRunNow_PacesRequests(t *testing.T) {
	history := &countingHistory{}
	cfg := createTestConfig(
		config.WatchlistEntry{Coin: "a"},
		config.WatchlistEntry{Coin: "b"},
		config.WatchlistEntry{Coin: "c"},
	)
	cfg.Workers = 3
	// one request every 100ms
	cfg.RequestsPerMinute = 600

	r, err := NewRefresher(history, cfg)
	require.NoError(t, err)

	start := time.Now()
	r.RunNow(context.Background())

	assert.Equal(t, int32(3), history.calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 180*time.Millisecond)
}

func TestRunNow_CancelledContext(t *testing.T) {
	history := &countingHistory{}
	cfg := createTestConfig(config.WatchlistEntry{Coin: "a"}, config.WatchlistEntry{Coin: "b"})
	cfg.RequestsPerMinute = 1

	r, err := NewRefresher(history, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := r.RunNow(ctx)
	for _, res := range results {
		assert.Error(t, res.Err)
	}
	assert.Equal(t, int32(0), history.calls.Load())
}

func TestStart_RunOnStart(t *testing.T) {
	history := &countingHistory{}
	cfg := createTestConfig(config.WatchlistEntry{Coin: "nexo"})
	cfg.RunOnStart = true

	r, err := NewRefresher(history, cfg)
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	assert.Eventually(t, func() bool {
		return history.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStart_Disabled(t *testing.T) {
	history := &countingHistory{}
	cfg := createTestConfig(config.WatchlistEntry{Coin: "nexo"})
	cfg.Enabled = false
	cfg.RunOnStart = true

	r, err := NewRefresher(history, cfg)
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	r.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), history.calls.Load())
}

func TestNewRefresher_InvalidSchedule(t *testing.T) {
	cfg := createTestConfig()
	cfg.Schedule = "whenever"

	_, err := NewRefresher(&countingHistory{}, cfg)
	assert.Error(t, err)
}
