package report

import (
	"context"
	"time"

	"github.com/bizkit/backend/internal/domain/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStatsTTL is used when the configured cache TTL is zero
const DefaultStatsTTL = 5 * time.Minute

// StatsCache caches assembled dashboard stats per company. A miss is
// (nil, nil); cache failures must not fail the dashboard.
type StatsCache interface {
	Get(ctx context.Context, companyID uuid.UUID) (*report.DashboardStats, error)
	Set(ctx context.Context, companyID uuid.UUID, stats *report.DashboardStats, ttl time.Duration) error
	Invalidate(ctx context.Context, companyID uuid.UUID) error
}

// DashboardService assembles per-company dashboard stats from the read-side
// repository, cache-aside
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	cache         StatsCache
	ttl           time.Duration
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo report.DashboardRepository, cache StatsCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
		ttl:           ttl,
		logger:        logger,
	}
}

// GetStats returns the company's dashboard stats, serving from cache when a
// fresh entry exists. Cache errors are logged and treated as misses.
func (s *DashboardService) GetStats(ctx context.Context, companyID uuid.UUID) (*report.DashboardStats, error) {
	cached, err := s.cache.Get(ctx, companyID)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	stats, err := s.assemble(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, companyID, stats, s.ttl); err != nil {
		s.logger.Warn("Dashboard cache write failed",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
	}

	return stats, nil
}

// InvalidateStats drops the cached entry for a company. Called after writes
// that change dashboard figures.
func (s *DashboardService) InvalidateStats(ctx context.Context, companyID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.logger.Warn("Dashboard cache invalidation failed",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
	}
}

func (s *DashboardService) assemble(ctx context.Context, companyID uuid.UUID) (*report.DashboardStats, error) {
	activeLeads, err := s.dashboardRepo.ActiveLeadCount(ctx, companyID)
	if err != nil {
		return nil, err
	}

	openProjects, err := s.dashboardRepo.OpenProjectCount(ctx, companyID)
	if err != nil {
		return nil, err
	}

	outstanding, currency, err := s.dashboardRepo.OutstandingInvoiceTotal(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthlyRevenue, err := s.dashboardRepo.RevenueSince(ctx, companyID, monthStart)
	if err != nil {
		return nil, err
	}

	return &report.DashboardStats{
		ActiveLeads:             activeLeads,
		OpenProjects:            openProjects,
		OutstandingInvoiceTotal: outstanding,
		MonthlyRevenue:          monthlyRevenue,
		Currency:                currency,
		GeneratedAt:             now,
	}, nil
}
