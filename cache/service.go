package cache

import (
	"context"
	"fmt"
	"time"
)

// Service implements Cache on top of go-cache
type Service struct {
	goCache *GoCache
	config  Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	return &Service{
		goCache: NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval),
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// GetOrLoad returns the cached value or loads and stores it.
// Loader errors are returned as is and nothing is cached.
func (s *Service) GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, bool, error) {
	if data, ok := s.Get(key); ok {
		return data, true, nil
	}

	data, err := loader()
	if err != nil {
		return nil, false, err
	}

	s.Set(key, data, ttl)
	return data, false, nil
}

func (s *Service) Get(key string) ([]byte, bool) {
	if !s.config.GoCache.Enabled {
		return nil, false
	}
	return s.goCache.Get(key)
}

func (s *Service) Set(key string, data []byte, ttl time.Duration) {
	if !s.config.GoCache.Enabled {
		return
	}
	s.goCache.Set(key, data, ttl)
}

// Len returns the number of entries held by go-cache
func (s *Service) Len() int {
	return s.goCache.ItemCount()
}
