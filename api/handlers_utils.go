package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusOK, data)
}

func (s *Server) sendJSONResponseWithStatus(w http.ResponseWriter, status int, data interface{}) {
	// Marshal the data to calculate content length and ETag
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// Calculate ETag (MD5 hash of the response)
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// errorResponse is the JSON body sent for failed requests
type errorResponse struct {
	Error          string `json:"error"`
	Kind           string `json:"kind,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// statusForError maps fetch failure kinds onto HTTP statuses
func statusForError(err error) int {
	switch cmc.KindOf(err) {
	case cmc.KindInvalidParams:
		return http.StatusBadRequest
	case cmc.KindUpstreamStatus, cmc.KindParse:
		return http.StatusBadGateway
	case cmc.KindTransport:
		if errors.Is(err, context.Canceled) {
			return http.StatusServiceUnavailable
		}
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) sendError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}

	var fe *cmc.FetchError
	if errors.As(err, &fe) {
		resp.Kind = fe.Kind.String()
		resp.UpstreamStatus = fe.StatusCode
	}

	s.sendJSONResponseWithStatus(w, statusForError(err), resp)
}

// sendBadRequest rejects a request whose query parameters are invalid
func (s *Server) sendBadRequest(w http.ResponseWriter, message string) {
	s.sendJSONResponseWithStatus(w, http.StatusBadRequest, errorResponse{
		Error: message,
		Kind:  cmc.KindInvalidParams.String(),
	})
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

func getParamLowercase(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	value := r.URL.Query().Get(key)
	if value != "" {
		return strings.ToLower(value)
	}
	return ""
}

// getIntParam returns def when key is absent
func getIntParam(r *http.Request, key string, def int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parameter '%s' must be an integer", key)
	}
	return n, nil
}

// getDateParam parses a YYYY-MM-DD parameter, returning def when absent
func getDateParam(r *http.Request, key string, def time.Time, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(cmc.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parameter '%s' must be a date in YYYY-MM-DD format", key)
	}
	return t, nil
}
