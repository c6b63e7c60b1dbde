package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/status-im/market-history/scheduler"
)

// WatchlistEntry is one coin refreshed by the scheduled job
type WatchlistEntry struct {
	Coin     string `yaml:"coin"`
	Currency string `yaml:"currency"`
	Days     int    `yaml:"days"`
}

// RefresherConfig defines the periodic refresh of a watchlist
type RefresherConfig struct {
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression with a leading seconds field
	Schedule string `yaml:"schedule"`

	// RunOnStart triggers one cycle right after startup
	RunOnStart bool `yaml:"run_on_start"`

	// Workers bounds the number of coins fetched concurrently
	Workers int `yaml:"workers"`

	// RequestsPerMinute spaces outgoing fetches within a cycle. Zero means unpaced.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	Watchlist []WatchlistEntry `yaml:"watchlist"`
}

func GetDefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Enabled:           false,
		Schedule:          "0 15 0 * * *",
		Workers:           2,
		RequestsPerMinute: 20,
	}
}

func (c RefresherConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Schedule) == "" {
		return errors.New("schedule is required when enabled")
	}
	if _, err := scheduler.ParseSchedule(c.Schedule); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.RequestsPerMinute < 0 {
		return errors.New("requests_per_minute must not be negative")
	}
	for i, entry := range c.Watchlist {
		if strings.TrimSpace(entry.Coin) == "" {
			return fmt.Errorf("watchlist[%d]: coin is required", i)
		}
		if entry.Days < 0 {
			return fmt.Errorf("watchlist[%d]: days must not be negative", i)
		}
	}
	return nil
}
