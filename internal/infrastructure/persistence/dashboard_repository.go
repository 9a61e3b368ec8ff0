package persistence

import (
	"context"
	"time"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/project"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDashboardRepository implements report.DashboardRepository with
// aggregate queries over the operational tables. No read models are
// maintained; the dashboard service caches the result instead.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// ActiveLeadCount counts leads that are neither won nor lost
func (r *GormDashboardRepository) ActiveLeadCount(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.LeadModel{}).
		Where("company_id = ? AND status NOT IN ?", companyID, []crm.LeadStatus{crm.LeadStatusWon, crm.LeadStatusLost}).
		Count(&count).Error
	return count, err
}

// OpenProjectCount counts projects in planning, active or on-hold state
func (r *GormDashboardRepository) OpenProjectCount(ctx context.Context, companyID uuid.UUID) (int64, error) {
	openStatuses := []project.ProjectStatus{
		project.ProjectStatusPlanning,
		project.ProjectStatusActive,
		project.ProjectStatusOnHold,
	}
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("company_id = ? AND status IN ?", companyID, openStatuses).
		Count(&count).Error
	return count, err
}

// OutstandingInvoiceTotal sums finalized unpaid invoice totals in minor
// units, together with the dominant invoicing currency
func (r *GormDashboardRepository) OutstandingInvoiceTotal(ctx context.Context, companyID uuid.UUID) (int64, string, error) {
	var row struct {
		Total    int64
		Currency string
	}
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total_minor), 0) AS total, COALESCE(MAX(currency), '') AS currency").
		Where("company_id = ? AND status = ?", companyID, finance.InvoiceStatusSent).
		Scan(&row).Error
	if err != nil {
		return 0, "", err
	}
	return row.Total, row.Currency, nil
}

// RevenueSince sums paid invoice totals, in minor units, for invoices
// paid at or after the given instant
func (r *GormDashboardRepository) RevenueSince(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total_minor), 0)").
		Where("company_id = ? AND status = ? AND paid_at >= ?", companyID, finance.InvoiceStatusPaid, since).
		Scan(&total).Error
	return total, err
}
