package recorder

import (
	"context"
	"time"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

//go:generate mockgen -destination=mocks/recorder.go . Recorder

// Recorder persists fetched tables so history survives restarts and provider
// lookback limits.
type Recorder interface {
	// RecordTable upserts every row of table keyed by coin, currency and date.
	// It returns the number of rows written.
	RecordTable(ctx context.Context, coin, currency string, table *cmc.Table) (int64, error)
	// ListRows returns stored rows with from <= date <= to in ascending date order.
	ListRows(ctx context.Context, coin, currency string, from, to time.Time) ([]cmc.Row, error)
	Close() error
}
