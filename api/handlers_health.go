package api

import (
	"net/http"
	"time"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"coingecko_market_chart": "unknown",
		},
	}

	if s.history != nil && s.history.Healthy() {
		status["services"].(map[string]string)["coingecko_market_chart"] = "up"
	}

	if s.refresher != nil {
		if lastRun := s.refresher.LastRun(); !lastRun.IsZero() {
			status["refresher_last_run"] = lastRun.UTC().Format(time.RFC3339)
		}
	}

	s.sendJSONResponse(w, status)
}
