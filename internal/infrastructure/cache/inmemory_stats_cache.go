package cache

import (
	"context"
	"sync"
	"time"

	appreport "github.com/bizkit/backend/internal/application/report"
	"github.com/bizkit/backend/internal/domain/report"
	"github.com/google/uuid"
)

type statsEntry struct {
	stats     report.DashboardStats
	expiresAt time.Time
}

// InMemoryStatsCache implements the dashboard StatsCache in process memory.
// It is suitable for single-instance deployments and testing.
// WARNING: In-memory caches do not share state across process instances,
// which can lead to stale dashboards in distributed deployments
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]statsEntry
	now     func() time.Time
}

// NewInMemoryStatsCache creates a new in-memory dashboard stats cache
func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{
		entries: make(map[uuid.UUID]statsEntry),
		now:     time.Now,
	}
}

// Get returns the company's cached stats, or (nil, nil) on a miss.
// Expired entries are evicted lazily
func (c *InMemoryStatsCache) Get(_ context.Context, companyID uuid.UUID) (*report.DashboardStats, error) {
	c.mu.RLock()
	entry, ok := c.entries[companyID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it
		if cur, ok := c.entries[companyID]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, companyID)
		}
		c.mu.Unlock()
		return nil, nil
	}

	stats := entry.stats
	return &stats, nil
}

// Set stores a copy of the stats with the given TTL
func (c *InMemoryStatsCache) Set(_ context.Context, companyID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error {
	if stats == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = appreport.DefaultStatsTTL
	}

	c.mu.Lock()
	c.entries[companyID] = statsEntry{
		stats:     *stats,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate removes the company's cached stats
func (c *InMemoryStatsCache) Invalidate(_ context.Context, companyID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, companyID)
	c.mu.Unlock()
	return nil
}

// Len reports the number of live entries (for testing/monitoring)
func (c *InMemoryStatsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryStatsCache implements StatsCache
var _ appreport.StatsCache = (*InMemoryStatsCache)(nil)
