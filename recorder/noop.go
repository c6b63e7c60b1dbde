package recorder

import (
	"context"
	"time"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTable(_ context.Context, _, _ string, _ *cmc.Table) (int64, error) {
	return 0, nil
}

func (n *NoopRecorder) ListRows(_ context.Context, _, _ string, _, _ time.Time) ([]cmc.Row, error) {
	return []cmc.Row{}, nil
}

func (n *NoopRecorder) Close() error { return nil }
