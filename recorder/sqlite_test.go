package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

func setupTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(":memory:", time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func ptr(v float64) *float64 { return &v }

func TestRecordTable_And_ListRows(t *testing.T) {
	r := setupTestRecorder(t)
	ctx := context.Background()

	table := &cmc.Table{
		HasMarketCaps: true,
		Rows: []cmc.Row{
			{Date: day(1), Price: 1.23, MarketCap: ptr(100)},
			{Date: day(2), Price: 1.24, MarketCap: ptr(101)},
			{Date: day(3), Price: 1.25, MarketCap: ptr(102)},
		},
	}

	n, err := r.RecordTable(ctx, "nexo", "eur", table)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := r.ListRows(ctx, "nexo", "eur", day(1), day(3))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, table.Rows, got)
}

func TestRecordTable_UpsertKeepsLatest(t *testing.T) {
	r := setupTestRecorder(t)
	ctx := context.Background()

	_, err := r.RecordTable(ctx, "nexo", "eur", &cmc.Table{Rows: []cmc.Row{
		{Date: day(1), Price: 1.0, MarketCap: ptr(10), TotalVolume: ptr(5)},
	}})
	require.NoError(t, err)

	_, err = r.RecordTable(ctx, "nexo", "eur", &cmc.Table{Rows: []cmc.Row{
		{Date: day(1), Price: 1.5},
	}})
	require.NoError(t, err)

	got, err := r.ListRows(ctx, "nexo", "eur", day(1), day(1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.5, got[0].Price)
	// values missing from the newer row are kept
	assert.Equal(t, 10.0, *got[0].MarketCap)
	assert.Equal(t, 5.0, *got[0].TotalVolume)
}

func TestListRows_FiltersByCoinCurrencyAndRange(t *testing.T) {
	r := setupTestRecorder(t)
	ctx := context.Background()

	rows := []cmc.Row{{Date: day(1), Price: 1}, {Date: day(2), Price: 2}, {Date: day(3), Price: 3}}
	_, err := r.RecordTable(ctx, "nexo", "eur", &cmc.Table{Rows: rows})
	require.NoError(t, err)
	_, err = r.RecordTable(ctx, "nexo", "usd", &cmc.Table{Rows: rows})
	require.NoError(t, err)
	_, err = r.RecordTable(ctx, "bitcoin", "eur", &cmc.Table{Rows: rows})
	require.NoError(t, err)

	got, err := r.ListRows(ctx, "nexo", "eur", day(2), day(5))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, day(2), got[0].Date)
	assert.Equal(t, day(3), got[1].Date)
	assert.Nil(t, got[0].MarketCap)

	got, err = r.ListRows(ctx, "ethereum", "eur", day(1), day(3))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordTable_Empty(t *testing.T) {
	r := setupTestRecorder(t)

	n, err := r.RecordTable(context.Background(), "nexo", "eur", &cmc.Table{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = r.RecordTable(context.Background(), "nexo", "eur", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRecordTable_LargeBatch(t *testing.T) {
	r := setupTestRecorder(t)
	ctx := context.Background()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	table := &cmc.Table{}
	for i := 0; i < batchSize*2+10; i++ {
		table.Rows = append(table.Rows, cmc.Row{Date: start.AddDate(0, 0, i), Price: float64(i)})
	}

	n, err := r.RecordTable(ctx, "nexo", "eur", table)
	require.NoError(t, err)
	assert.Equal(t, int64(len(table.Rows)), n)

	got, err := r.ListRows(ctx, "nexo", "eur", start, start.AddDate(10, 0, 0))
	require.NoError(t, err)
	assert.Len(t, got, len(table.Rows))
}

func TestRecordTable_FailedBatchRollsBackEverything(t *testing.T) {
	r := setupTestRecorder(t)
	ctx := context.Background()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	table := &cmc.Table{}
	for i := 0; i < batchSize+10; i++ {
		table.Rows = append(table.Rows, cmc.Row{Date: start.AddDate(0, 0, i), Price: float64(i)})
	}

	// reject one row of the second batch
	rejected := table.Rows[batchSize+5].Date.Format(cmc.DateFormat)
	_, err := r.db.ExecContext(ctx, `CREATE TRIGGER reject_row BEFORE INSERT ON market_chart_rows
		WHEN NEW.date = '`+rejected+`'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	n, err := r.RecordTable(ctx, "nexo", "eur", table)
	require.Error(t, err)
	assert.Equal(t, int64(0), n)

	got, err := r.ListRows(ctx, "nexo", "eur", start, start.AddDate(10, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, got, "rows from the first batch must be rolled back")
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()

	n, err := r.RecordTable(context.Background(), "nexo", "eur", &cmc.Table{Rows: []cmc.Row{{Date: day(1)}}})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)

	rows, err := r.ListRows(context.Background(), "nexo", "eur", day(1), day(2))
	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, r.Close())
}
