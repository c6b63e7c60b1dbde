package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/status-im/market-history/cache"
)

type Config struct {
	MarketChart CoingeckoMarketChartFetcher `yaml:"market_chart"`
	History     HistoryConfig               `yaml:"history"`
	Cache       cache.Config                `yaml:"cache"`
	Recorder    RecorderConfig              `yaml:"recorder"`
	Refresher   RefresherConfig             `yaml:"refresher"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
}

// Default returns a configuration with every section set to its defaults
func Default() *Config {
	return &Config{
		MarketChart: GetDefaultMarketChartConfig(),
		History:     GetDefaultHistoryConfig(),
		Cache:       cache.DefaultCacheConfig(),
		Recorder:    GetDefaultRecorderConfig(),
		Refresher:   GetDefaultRefresherConfig(),
	}
}

// LoadConfig reads a YAML file on top of the defaults. A missing file is not
// an error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config: %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks sections that cannot be corrected by defaults
func (c *Config) Validate() error {
	if err := c.MarketChart.Validate(); err != nil {
		return fmt.Errorf("market_chart: %w", err)
	}
	if err := c.Refresher.Validate(); err != nil {
		return fmt.Errorf("refresher: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.Recorder.Enabled && c.Recorder.Path == "" {
		return fmt.Errorf("recorder: path is required when enabled")
	}
	return nil
}
