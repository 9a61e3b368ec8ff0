package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizkit/backend/internal/domain/report"
	"github.com/bizkit/backend/internal/infrastructure/config"
	appreport "github.com/bizkit/backend/internal/application/report"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStatsCache implements the dashboard StatsCache on Redis
type RedisStatsCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisStatsCacheOption is a functional option for configuring the cache
type RedisStatsCacheOption func(*RedisStatsCache)

// WithStatsCacheLogger sets the logger for the cache
func WithStatsCacheLogger(logger *zap.Logger) RedisStatsCacheOption {
	return func(c *RedisStatsCache) {
		c.logger = logger
	}
}

// NewRedisStatsCache creates a new Redis-backed dashboard stats cache
func NewRedisStatsCache(cfg config.RedisConfig, opts ...RedisStatsCacheOption) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisStatsCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisStatsCacheWithClient creates a cache with an existing Redis client.
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisStatsCacheWithClient(client *redis.Client, opts ...RedisStatsCacheOption) *RedisStatsCache {
	cache := &RedisStatsCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// statsCacheKey generates the cache key for a company's dashboard stats
func (c *RedisStatsCache) statsCacheKey(companyID uuid.UUID) string {
	return fmt.Sprintf("dashboard_stats:%s", companyID.String())
}

// Get retrieves a company's cached dashboard stats. A miss returns (nil, nil)
func (c *RedisStatsCache) Get(ctx context.Context, companyID uuid.UUID) (*report.DashboardStats, error) {
	cacheKey := c.statsCacheKey(companyID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for dashboard stats",
			zap.String("company_id", companyID.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get dashboard stats from cache",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get stats from cache: %w", err)
	}

	var stats report.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Error("Failed to unmarshal dashboard stats",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	c.logger.Debug("Cache hit for dashboard stats",
		zap.String("company_id", companyID.String()))
	return &stats, nil
}

// Set stores a company's dashboard stats with the given TTL
func (c *RedisStatsCache) Set(ctx context.Context, companyID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error {
	if stats == nil {
		return nil
	}

	if ttl <= 0 {
		ttl = appreport.DefaultStatsTTL
	}

	cacheKey := c.statsCacheKey(companyID)

	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Error("Failed to marshal dashboard stats",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set dashboard stats in cache",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set stats in cache: %w", err)
	}

	c.logger.Debug("Cached dashboard stats",
		zap.String("company_id", companyID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes a company's cached dashboard stats
func (c *RedisStatsCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	cacheKey := c.statsCacheKey(companyID)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate dashboard stats",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate stats: %w", err)
	}

	c.logger.Debug("Invalidated dashboard stats",
		zap.String("company_id", companyID.String()))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisStatsCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisStatsCache implements StatsCache
var _ appreport.StatsCache = (*RedisStatsCache)(nil)
