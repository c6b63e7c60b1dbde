package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cmc "github.com/status-im/market-history/coingecko_market_chart"
)

// HistoryService is what the server needs from the history layer
type HistoryService interface {
	History(ctx context.Context, params cmc.MarketChartParams) (*cmc.Table, error)
	Stored(ctx context.Context, coin, currency string, from, to time.Time) (*cmc.Table, error)
	Healthy() bool
}

// RefresherStatus reports the scheduled refresh state
type RefresherStatus interface {
	LastRun() time.Time
}

type Server struct {
	port      string
	history   HistoryService
	refresher RefresherStatus
	server    *http.Server
}

// New creates the HTTP server. refresher may be nil.
func New(port string, history HistoryService, refresher RefresherStatus) *Server {
	return &Server{
		port:      port,
		history:   history,
		refresher: refresher,
	}
}

// Handler returns the router with every endpoint registered
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/coins/{id}/history", s.handleHistory).Methods("GET")
	router.HandleFunc("/api/v1/coins/{id}/history/stored", s.handleStoredHistory).Methods("GET")

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
