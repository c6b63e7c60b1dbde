package config

import (
	"errors"
	"strings"
	"time"
)

// CoingeckoMarketChartFetcher defines configuration for the daily market chart fetcher
type CoingeckoMarketChartFetcher struct {
	// DefaultCoin is used when a request does not name a coin
	DefaultCoin string `yaml:"default_coin"`

	// DefaultCurrency is the quote currency used when none is requested
	DefaultCurrency string `yaml:"default_currency"`

	// DefaultDays is the lookback window used when none is requested
	DefaultDays int `yaml:"default_days"`

	// ConnectionTimeout limits establishing the TCP connection
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`

	// RequestTimeout limits the whole request including reading the body
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Location is the IANA zone used to turn timestamps into calendar dates.
	// CoinGecko stamps daily points at 00:00 UTC.
	Location string `yaml:"location"`
}

// GetDefaultMarketChartConfig returns default configuration for the market chart fetcher
func GetDefaultMarketChartConfig() CoingeckoMarketChartFetcher {
	return CoingeckoMarketChartFetcher{
		DefaultCoin:       "nexo",
		DefaultCurrency:   "eur",
		DefaultDays:       30,
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
		Location:          "UTC",
	}
}

func (c CoingeckoMarketChartFetcher) Validate() error {
	if strings.TrimSpace(c.DefaultCoin) == "" {
		return errors.New("default_coin must not be empty")
	}
	if strings.TrimSpace(c.DefaultCurrency) == "" {
		return errors.New("default_currency must not be empty")
	}
	if c.DefaultDays <= 0 {
		return errors.New("default_days must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if _, err := c.LoadLocation(); err != nil {
		return err
	}
	return nil
}

// LoadLocation resolves Location, treating an empty value as UTC
func (c CoingeckoMarketChartFetcher) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Location)
}
