package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/market-history/config"
)

// createTestConfig creates a test configuration and returns the path to the file
func createTestConfig(mockURL string) (string, error) {
	tempDir, err := os.MkdirTemp("", "market-history-test")
	if err != nil {
		return "", err
	}

	configContent := fmt.Sprintf(`
market_chart:
  default_coin: nexo
  default_currency: eur
  default_days: 30
  connection_timeout: 2s
  request_timeout: 5s
  location: UTC

history:
  cache_ttl: 1m               # cache tables for the duration of a test

cache:
  go_cache:
    enabled: true
    default_expiration: 5m
    cleanup_interval: 10m

recorder:
  enabled: true
  path: "%s"

refresher:
  enabled: true
  schedule: "0 0 0 1 1 *"     # effectively never during a test
  run_on_start: true
  workers: 2
  requests_per_minute: 0
  watchlist:
    - coin: nexo
      currency: eur
      days: 30
    - coin: broken

# URL for API (mock)
override_coingecko_public_url: "%s"
`, filepath.Join(tempDir, "history.db"), mockURL)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
