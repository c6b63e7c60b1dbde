package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"

	defaultStoredRangeDays = 365
)

// handleHistory serves /api/v1/coins/{id}/history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	format, ok := s.parseFormat(w, r)
	if !ok {
		return
	}

	// an absent days selects the configured default; an explicit one must be positive
	days, err := getIntParam(r, "days", 0)
	if err != nil {
		s.sendBadRequest(w, err.Error())
		return
	}
	if r.URL.Query().Has("days") && days <= 0 {
		s.sendBadRequest(w, "parameter 'days' must be positive")
		return
	}

	params := cmc.MarketChartParams{
		ID:       strings.ToLower(mux.Vars(r)["id"]),
		Currency: getParamLowercase(r, "vs_currency"),
		Days:     days,
	}

	table, err := s.history.History(r.Context(), params)
	if err != nil {
		log.Printf("API: history for %s failed: %v", params.ID, err)
		s.sendError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	s.sendTable(w, table, format)
}

// handleStoredHistory serves /api/v1/coins/{id}/history/stored
func (s *Server) handleStoredHistory(w http.ResponseWriter, r *http.Request) {
	format, ok := s.parseFormat(w, r)
	if !ok {
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	to, err := getDateParam(r, "to", today, time.UTC)
	if err != nil {
		s.sendBadRequest(w, err.Error())
		return
	}
	from, err := getDateParam(r, "from", to.AddDate(0, 0, -defaultStoredRangeDays), time.UTC)
	if err != nil {
		s.sendBadRequest(w, err.Error())
		return
	}
	if to.Before(from) {
		s.sendBadRequest(w, "parameter 'from' must not be after 'to'")
		return
	}

	coin := strings.ToLower(mux.Vars(r)["id"])
	table, err := s.history.Stored(r.Context(), coin, getParamLowercase(r, "vs_currency"), from, to)
	if err != nil {
		log.Printf("API: stored history for %s failed: %v", coin, err)
		s.sendJSONResponseWithStatus(w, http.StatusInternalServerError,
			errorResponse{Error: "failed to read stored history"})
		return
	}

	s.sendTable(w, table, format)
}

func (s *Server) parseFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := getParamLowercase(r, "format")
	switch format {
	case "", formatJSON:
		return formatJSON, true
	case formatCSV:
		return formatCSV, true
	default:
		s.sendBadRequest(w, "parameter 'format' must be 'json' or 'csv'")
		return "", false
	}
}

func (s *Server) sendTable(w http.ResponseWriter, table *cmc.Table, format string) {
	if format != formatCSV {
		s.sendJSONResponse(w, table)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s.csv", table.Coin, table.Currency)))
	if err := table.WriteCSV(w); err != nil {
		log.Printf("Error writing CSV response: %v", err)
	}
}
