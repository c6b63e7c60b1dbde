package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

const batchSize = 500

// SQLiteRecorder persists daily rows to a SQLite database.
type SQLiteRecorder struct {
	db       *sql.DB
	location *time.Location
	mu       sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
// Dates read back are anchored in loc.
func NewSQLiteRecorder(dbPath string, loc *time.Location) (*SQLiteRecorder, error) {
	if loc == nil {
		loc = time.UTC
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, location: loc}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("Recorder: sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_chart_rows (
			coin         TEXT NOT NULL,
			currency     TEXT NOT NULL,
			date         TEXT NOT NULL,
			price        REAL NOT NULL,
			market_cap   REAL,
			total_volume REAL,
			updated_at   INTEGER NOT NULL,
			PRIMARY KEY (coin, currency, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_market_chart_rows_date ON market_chart_rows(date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordTable upserts rows. A later fetch of the same date replaces the price;
// market cap and volume are only replaced when the new row carries them.
func (r *SQLiteRecorder) RecordTable(ctx context.Context, coin, currency string, table *cmc.Table) (int64, error) {
	if table == nil || table.Len() == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Unix()
	var total int64

	for i := 0; i < len(table.Rows); i += batchSize {
		end := i + batchSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		batch := table.Rows[i:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*7)
		for j, row := range batch {
			placeholders[j] = "(?, ?, ?, ?, ?, ?, ?)"
			args = append(args, coin, currency, row.Date.Format(cmc.DateFormat),
				row.Price, nullable(row.MarketCap), nullable(row.TotalVolume), now)
		}

		query := fmt.Sprintf(
			`INSERT INTO market_chart_rows (coin, currency, date, price, market_cap, total_volume, updated_at)
			VALUES %s
			ON CONFLICT(coin, currency, date) DO UPDATE SET
				price = excluded.price,
				market_cap = COALESCE(excluded.market_cap, market_chart_rows.market_cap),
				total_volume = COALESCE(excluded.total_volume, market_chart_rows.total_volume),
				updated_at = excluded.updated_at`,
			strings.Join(placeholders, ", "),
		)

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("save rows: %w", err)
		}

		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return total, nil
}

func (r *SQLiteRecorder) ListRows(ctx context.Context, coin, currency string, from, to time.Time) ([]cmc.Row, error) {
	const query = `SELECT date, price, market_cap, total_volume
		FROM market_chart_rows
		WHERE coin = ? AND currency = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, query, coin, currency,
		from.Format(cmc.DateFormat), to.Format(cmc.DateFormat))
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []cmc.Row{}
	for rows.Next() {
		var dateStr string
		var row cmc.Row
		var marketCap, totalVolume sql.NullFloat64
		if err := rows.Scan(&dateStr, &row.Price, &marketCap, &totalVolume); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Date, err = time.ParseInLocation(cmc.DateFormat, dateStr, r.location)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
		if marketCap.Valid {
			v := marketCap.Float64
			row.MarketCap = &v
		}
		if totalVolume.Valid {
			v := totalVolume.Float64
			row.TotalVolume = &v
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("Recorder: closing sqlite recorder")
	return r.db.Close()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
