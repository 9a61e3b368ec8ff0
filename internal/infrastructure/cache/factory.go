package cache

import (
	"fmt"

	appreport "github.com/bizkit/backend/internal/application/report"
	"github.com/bizkit/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StatsCacheFactory creates dashboard stats caches based on configuration
type StatsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatsCacheFactoryOption is a functional option for configuring the factory
type StatsCacheFactoryOption func(*StatsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback)
func WithInMemoryFallback(allow bool) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatsCacheFactory creates a new factory
func NewStatsCacheFactory(cfg config.RedisConfig, opts ...StatsCacheFactoryOption) *StatsCacheFactory {
	f := &StatsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed stats cache
func (f *StatsCacheFactory) CreateRedisCache() (appreport.StatsCache, error) {
	cache, err := NewRedisStatsCache(f.redisConfig, WithStatsCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis stats cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory stats cache
func (f *StatsCacheFactory) CreateInMemoryCache() appreport.StatsCache {
	return NewInMemoryStatsCache()
}

// CreateCache creates a stats cache based on whether Redis is available.
// It tries Redis first, and falls back to in-memory if Redis is unavailable
// and fallback is allowed
func (f *StatsCacheFactory) CreateCache() (appreport.StatsCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis dashboard stats cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for stats cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stats cache. "+
		"Dashboards may serve stale data across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
