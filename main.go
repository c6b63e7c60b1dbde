package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/market-history/cache"
	cmc "github.com/status-im/market-history/coingecko_market_chart"
	"github.com/status-im/market-history/config"
	"github.com/status-im/market-history/core"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	once := flag.Bool("once", false, "fetch the default coin once, print it as CSV and exit")
	coin := flag.String("coin", "", "coin id for -once, defaults to market_chart.default_coin")
	currency := flag.String("currency", "", "quote currency for -once, defaults to market_chart.default_currency")
	days := flag.Int("days", 0, "lookback in days for -once, defaults to market_chart.default_days")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *once {
		go func() {
			<-sigChan
			cancel()
		}()
		params := cmc.MarketChartParams{ID: *coin, Currency: *currency, Days: *days}
		if err := runOnce(ctx, cfg, cfg.OverrideCoingeckoPublicURL, params, os.Stdout); err != nil {
			log.Fatal("Fetch failed:", err)
		}
		return
	}

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to setup services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		registry.StopAll()
		log.Fatal("Failed to start services:", err)
	}

	<-sigChan
	log.Println("Received shutdown signal, stopping services...")
	cancel()
	registry.StopAll()
}

// runOnce fetches a single table from baseURL and writes it to w as CSV.
// An empty baseURL uses the public CoinGecko API.
func runOnce(ctx context.Context, cfg *config.Config, baseURL string, params cmc.MarketChartParams, w io.Writer) error {
	onceCfg := *cfg
	onceCfg.Recorder.Enabled = false
	onceCfg.OverrideCoingeckoPublicURL = baseURL

	historyService, err := core.NewHistoryService(&onceCfg, cache.NewService(onceCfg.Cache))
	if err != nil {
		return err
	}
	defer historyService.Stop()

	table, err := historyService.History(ctx, params)
	if err != nil {
		return err
	}

	log.Printf("Fetched %d rows for %s/%s", table.Len(), table.Coin, table.Currency)
	return table.WriteCSV(w)
}
