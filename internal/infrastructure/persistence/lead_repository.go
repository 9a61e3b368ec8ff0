package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByIDForCompany finds a lead by ID scoped to a company
func (r *GormLeadRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*crm.Lead, error) {
	var model models.LeadModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all leads for a company matching the filter
func (r *GormLeadRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]crm.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.LeadModel{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// FindByStatus finds leads by status for a company
func (r *GormLeadRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status crm.LeadStatus, filter shared.Filter) ([]crm.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.LeadModel{}).
			Where("company_id = ? AND status = ?", companyID, status),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]crm.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	model := models.LeadModelFromDomain(lead)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteForCompany deletes a lead scoped to a company
func (r *GormLeadRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&models.LeadModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForCompany counts leads for a company matching the filter
func (r *GormLeadRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.LeadModel{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeadSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		}
	}

	return query
}
