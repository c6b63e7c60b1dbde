package config

import "time"

// HistoryConfig controls the caching service in front of the fetcher
type HistoryConfig struct {
	// CacheTTL is how long a fetched table is served from memory. Zero disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func GetDefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		CacheTTL: 10 * time.Minute,
	}
}

// RecorderConfig controls persistence of fetched rows
type RecorderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func GetDefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Enabled: false,
		Path:    "market_history.db",
	}
}
