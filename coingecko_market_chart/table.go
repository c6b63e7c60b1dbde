package coingecko_market_chart

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the layout used for row dates in every output format
const DateFormat = "2006-01-02"

// Column names as reported by the provider
const (
	ColumnPrices       = "prices"
	ColumnMarketCaps   = "market_caps"
	ColumnTotalVolumes = "total_volumes"
)

// Row is one calendar day of market data
type Row struct {
	Date        time.Time
	Price       float64
	MarketCap   *float64
	TotalVolume *float64
}

type rowJSON struct {
	Date        string   `json:"date"`
	Price       float64  `json:"prices"`
	MarketCap   *float64 `json:"market_caps,omitempty"`
	TotalVolume *float64 `json:"total_volumes,omitempty"`
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(rowJSON{
		Date:        r.Date.Format(DateFormat),
		Price:       r.Price,
		MarketCap:   r.MarketCap,
		TotalVolume: r.TotalVolume,
	})
}

// UnmarshalJSON reads the date as midnight UTC. Table decoding moves it to the
// table's location.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw rowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse(DateFormat, raw.Date)
	if err != nil {
		return fmt.Errorf("invalid row date %q: %w", raw.Date, err)
	}
	*r = Row{Date: date, Price: raw.Price, MarketCap: raw.MarketCap, TotalVolume: raw.TotalVolume}
	return nil
}

// Table is a date indexed series with unique dates in provider order
type Table struct {
	Coin            string
	Currency        string
	Days            int
	HasMarketCaps   bool
	HasTotalVolumes bool
	Rows            []Row
}

// Columns lists the value columns present in the table
func (t *Table) Columns() []string {
	columns := []string{ColumnPrices}
	if t.HasMarketCaps {
		columns = append(columns, ColumnMarketCaps)
	}
	if t.HasTotalVolumes {
		columns = append(columns, ColumnTotalVolumes)
	}
	return columns
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

type tableJSON struct {
	Coin     string   `json:"coin"`
	Currency string   `json:"vs_currency"`
	Days     int      `json:"days"`
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	rows := t.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(tableJSON{
		Coin:     t.Coin,
		Currency: t.Currency,
		Days:     t.Days,
		Columns:  t.Columns(),
		Rows:     rows,
	})
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var raw tableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Table{Coin: raw.Coin, Currency: raw.Currency, Days: raw.Days, Rows: raw.Rows}
	for _, column := range raw.Columns {
		switch column {
		case ColumnMarketCaps:
			t.HasMarketCaps = true
		case ColumnTotalVolumes:
			t.HasTotalVolumes = true
		}
	}
	return nil
}

// DecodeTable decodes a JSON encoded table and anchors its dates in loc
func DecodeTable(data []byte, loc *time.Location) (*Table, error) {
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	for i := range table.Rows {
		y, m, d := table.Rows[i].Date.Date()
		table.Rows[i].Date = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return &table, nil
}

// DateOf converts a millisecond timestamp into a calendar date in loc.
// Milliseconds are truncated to whole seconds and the time of day is dropped.
func DateOf(timestampMillis int64, loc *time.Location) time.Time {
	t := time.Unix(timestampMillis/1000, 0).In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// BuildTable shapes a parsed response into a table. Values are copied as is.
// When a date repeats, the later point replaces the earlier one in place.
func BuildTable(resp *MarketChartResponse, loc *time.Location) *Table {
	table := &Table{
		HasMarketCaps:   resp.MarketCaps != nil,
		HasTotalVolumes: resp.TotalVolumes != nil,
		Rows:            make([]Row, 0, len(resp.Prices)),
	}

	positions := make(map[time.Time]int, len(resp.Prices))
	for i, point := range resp.Prices {
		row := Row{
			Date:  DateOf(point.Timestamp(), loc),
			Price: point.Value(),
		}
		if table.HasMarketCaps {
			v := resp.MarketCaps[i].Value()
			row.MarketCap = &v
		}
		if table.HasTotalVolumes {
			v := resp.TotalVolumes[i].Value()
			row.TotalVolume = &v
		}

		if pos, ok := positions[row.Date]; ok {
			table.Rows[pos] = row
			continue
		}
		positions[row.Date] = len(table.Rows)
		table.Rows = append(table.Rows, row)
	}

	return table
}
