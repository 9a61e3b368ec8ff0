package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bizkit/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStatsCache_SetAndGet(t *testing.T) {
	cache := NewInMemoryStatsCache()
	ctx := context.Background()
	companyID := uuid.New()

	stats := &report.DashboardStats{
		ActiveLeads:             5,
		OpenProjects:            3,
		OutstandingInvoiceTotal: 240000,
		MonthlyRevenue:          1200000,
		Currency:                "USD",
		GeneratedAt:             time.Now(),
	}

	require.NoError(t, cache.Set(ctx, companyID, stats, time.Minute))

	got, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.ActiveLeads)
	assert.Equal(t, int64(240000), got.OutstandingInvoiceTotal)
	assert.Equal(t, "USD", got.Currency)
}

func TestInMemoryStatsCache_MissReturnsNilNil(t *testing.T) {
	cache := NewInMemoryStatsCache()

	got, err := cache.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryStatsCache_GetReturnsCopy(t *testing.T) {
	cache := NewInMemoryStatsCache()
	ctx := context.Background()
	companyID := uuid.New()

	stats := &report.DashboardStats{ActiveLeads: 1, Currency: "USD"}
	require.NoError(t, cache.Set(ctx, companyID, stats, time.Minute))

	first, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	first.ActiveLeads = 99

	second, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.ActiveLeads)
}

func TestInMemoryStatsCache_Expiry(t *testing.T) {
	cache := NewInMemoryStatsCache()
	ctx := context.Background()
	companyID := uuid.New()

	now := time.Now()
	cache.now = func() time.Time { return now }

	stats := &report.DashboardStats{ActiveLeads: 2, Currency: "USD"}
	require.NoError(t, cache.Set(ctx, companyID, stats, time.Minute))

	got, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Advance past the TTL
	now = now.Add(2 * time.Minute)

	got, err = cache.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, cache.Len())
}

func TestInMemoryStatsCache_ZeroTTLUsesDefault(t *testing.T) {
	cache := NewInMemoryStatsCache()
	ctx := context.Background()
	companyID := uuid.New()

	now := time.Now()
	cache.now = func() time.Time { return now }

	stats := &report.DashboardStats{ActiveLeads: 3, Currency: "USD"}
	require.NoError(t, cache.Set(ctx, companyID, stats, 0))

	// Still alive just before the default TTL elapses
	now = now.Add(4 * time.Minute)
	got, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = cache.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemoryStatsCache_Invalidate(t *testing.T) {
	cache := NewInMemoryStatsCache()
	ctx := context.Background()
	companyID := uuid.New()
	otherID := uuid.New()

	stats := &report.DashboardStats{ActiveLeads: 4, Currency: "USD"}
	require.NoError(t, cache.Set(ctx, companyID, stats, time.Minute))
	require.NoError(t, cache.Set(ctx, otherID, stats, time.Minute))

	require.NoError(t, cache.Invalidate(ctx, companyID))

	got, err := cache.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Other companies are untouched
	got, err = cache.Get(ctx, otherID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestInMemoryStatsCache_NilStatsIsNoop(t *testing.T) {
	cache := NewInMemoryStatsCache()

	require.NoError(t, cache.Set(context.Background(), uuid.New(), nil, time.Minute))
	assert.Equal(t, 0, cache.Len())
}
