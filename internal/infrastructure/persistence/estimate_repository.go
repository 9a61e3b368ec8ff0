package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEstimateRepository implements crm.EstimateRepository using GORM
type GormEstimateRepository struct {
	db *gorm.DB
}

// NewGormEstimateRepository creates a new GormEstimateRepository
func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// FindByIDForCompany finds an estimate by ID scoped to a company
func (r *GormEstimateRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*crm.Estimate, error) {
	var model models.EstimateModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByNumber finds an estimate by number for a company
func (r *GormEstimateRepository) FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*crm.Estimate, error) {
	var model models.EstimateModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND number = ?", companyID, strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForCompany finds all estimates for a company matching the filter
func (r *GormEstimateRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]crm.Estimate, error) {
	var estimateModels []models.EstimateModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.EstimateModel{}).
			Preload("Lines").
			Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&estimateModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(estimateModels)
}

// FindByLead finds all estimates raised for a lead
func (r *GormEstimateRepository) FindByLead(ctx context.Context, companyID, leadID uuid.UUID) ([]crm.Estimate, error) {
	var estimateModels []models.EstimateModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND lead_id = ?", companyID, leadID).
		Order("created_at DESC").
		Find(&estimateModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(estimateModels)
}

// Save creates or updates an estimate together with its lines.
// Lines are replaced wholesale so removed lines do not linger.
func (r *GormEstimateRepository) Save(ctx context.Context, estimate *crm.Estimate) error {
	model := models.EstimateModelFromDomain(estimate)
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("estimate_id = ?", model.ID).Delete(&models.EstimateLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// DeleteForCompany deletes an estimate scoped to a company
func (r *GormEstimateRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&models.EstimateModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("estimate_id = ?", id).Delete(&models.EstimateLineModel{}).Error
	})
}

// ExistsByNumber checks if an estimate number exists for a company
func (r *GormEstimateRepository) ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.EstimateModel{}).
		Where("company_id = ? AND number = ?", companyID, strings.ToUpper(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextEstimateNumber generates the next estimate number for a company,
// e.g. EST-2026-001
func (r *GormEstimateRepository) NextEstimateNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	counter, err := nextSeriesNumber(dbFrom(ctx, r.db).WithContext(ctx), companyID, seriesEstimate, year)
	if err != nil {
		return "", err
	}
	return formatSeriesNumber(seriesEstimate, year, counter, 3), nil
}

func (r *GormEstimateRepository) toDomainSlice(estimateModels []models.EstimateModel) ([]crm.Estimate, error) {
	estimates := make([]crm.Estimate, len(estimateModels))
	for i, model := range estimateModels {
		estimate, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		estimates[i] = *estimate
	}
	return estimates, nil
}

// applyFilter applies filter options to the query
func (r *GormEstimateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ? OR lead_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "lead_id":
			query = query.Where("lead_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EstimateSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
