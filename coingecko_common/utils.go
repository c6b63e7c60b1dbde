package coingecko_common

import (
	"log"

	"github.com/status-im/market-history/config"
)

// GetApiBaseUrl returns the public API URL unless the config overrides it
func GetApiBaseUrl(cfg *config.Config) string {
	if cfg != nil && cfg.OverrideCoingeckoPublicURL != "" {
		log.Printf("CoinGecko: Using overridden public API URL: %s", cfg.OverrideCoingeckoPublicURL)
		return cfg.OverrideCoingeckoPublicURL
	}
	return COINGECKO_PUBLIC_URL
}
