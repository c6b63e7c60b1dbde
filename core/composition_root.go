package core

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/status-im/market-history/api"
	"github.com/status-im/market-history/cache"
	cmc "github.com/status-im/market-history/coingecko_market_chart"
	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/history"
	"github.com/status-im/market-history/recorder"
	"github.com/status-im/market-history/refresher"
)

// NewRecorder opens the configured recorder, or a no-op one when disabled
func NewRecorder(cfg *config.Config) (recorder.Recorder, error) {
	if !cfg.Recorder.Enabled {
		return recorder.NewNoopRecorder(), nil
	}
	loc, err := cfg.MarketChart.LoadLocation()
	if err != nil {
		return nil, err
	}
	return recorder.NewSQLiteRecorder(cfg.Recorder.Path, loc)
}

// NewHistoryService wires the fetcher, cache and recorder
func NewHistoryService(cfg *config.Config, cacheService cache.Cache) (*history.Service, error) {
	fetcher, err := cmc.NewFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create market chart fetcher: %w", err)
	}

	rec, err := NewRecorder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open recorder: %w", err)
	}

	return history.NewService(fetcher, cacheService, rec, cfg.History), nil
}

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register("cache", cacheService)

	// Create History service with cache and recorder dependencies
	historyService, err := NewHistoryService(cfg, cacheService)
	if err != nil {
		return nil, err
	}
	registry.Register("history", historyService)

	// Create Refresher for the configured watchlist
	refresherService, err := refresher.NewRefresher(historyService, cfg.Refresher)
	if err != nil {
		historyService.Stop()
		return nil, fmt.Errorf("failed to create refresher: %w", err)
	}
	registry.Register("refresher", refresherService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server and register it as a core
	server := api.New(port, historyService, refresherService)
	registry.Register("api", server)

	log.Printf("Core: %d services registered", registry.Len())
	return registry, nil
}
