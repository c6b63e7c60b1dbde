package coingecko_market_chart

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the table with a header of date followed by Columns()
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := append([]string{"date"}, t.Columns()...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range t.Rows {
		record = record[:0]
		record = append(record, row.Date.Format(DateFormat), formatFloat(row.Price))
		if t.HasMarketCaps {
			record = append(record, formatOptional(row.MarketCap))
		}
		if t.HasTotalVolumes {
			record = append(record, formatOptional(row.TotalVolume))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
