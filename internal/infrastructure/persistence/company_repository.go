package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements tenant.CompanyRepository using GORM.
// Companies are the tenant root, so lookups here are not company-scoped.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Company, error) {
	var company tenant.Company
	if err := dbFrom(ctx, r.db).WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindBySubdomain finds a company by its subdomain
func (r *GormCompanyRepository) FindBySubdomain(ctx context.Context, subdomain string) (*tenant.Company, error) {
	var company tenant.Company
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("subdomain = ?", strings.ToLower(strings.TrimSpace(subdomain))).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindFirst returns the oldest registered company.
// Development fallback when no tenant can be resolved from the request.
func (r *GormCompanyRepository) FindFirst(ctx context.Context) (*tenant.Company, error) {
	var company tenant.Company
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Order("created_at ASC").
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Company, error) {
	var companies []tenant.Company
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&tenant.Company{})

	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR subdomain ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "plan":
			query = query.Where("plan = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, CompanySortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *tenant.Company) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(company).Error
}

// ExistsBySubdomain checks if a subdomain is taken
func (r *GormCompanyRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&tenant.Company{}).
		Where("subdomain = ?", strings.ToLower(strings.TrimSpace(subdomain))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
