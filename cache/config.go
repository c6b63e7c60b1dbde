package cache

import (
	"errors"
	"time"
)

// Config represents cache configuration
type Config struct {
	GoCache GoCacheConfig `yaml:"go_cache"`
}

// GoCacheConfig configuration for the in-memory table cache
type GoCacheConfig struct {
	// DefaultExpiration is used when an entry is stored with ttl 0.
	// If 0, such entries never expire.
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval is how often expired tables are purged. 0 disables purging.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// Enabled turns caching on; a disabled cache always calls the loader
	Enabled bool `yaml:"enabled"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
			Enabled:           true,
		},
	}
}

func (c Config) Validate() error {
	if c.GoCache.DefaultExpiration < 0 {
		return errors.New("go_cache.default_expiration must not be negative")
	}
	if c.GoCache.CleanupInterval < 0 {
		return errors.New("go_cache.cleanup_interval must not be negative")
	}
	return nil
}
