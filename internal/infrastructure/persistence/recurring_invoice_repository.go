package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecurringInvoiceRepository implements finance.RecurringInvoiceRepository using GORM
type GormRecurringInvoiceRepository struct {
	db *gorm.DB
}

// NewGormRecurringInvoiceRepository creates a new GormRecurringInvoiceRepository
func NewGormRecurringInvoiceRepository(db *gorm.DB) *GormRecurringInvoiceRepository {
	return &GormRecurringInvoiceRepository{db: db}
}

// FindByIDForCompany finds a template by ID scoped to a company
func (r *GormRecurringInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.RecurringInvoice, error) {
	var model models.RecurringInvoiceModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForCompany finds all templates for a company matching the filter
func (r *GormRecurringInvoiceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.RecurringInvoice, error) {
	var templateModels []models.RecurringInvoiceModel
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&models.RecurringInvoiceModel{}).Where("company_id = ?", companyID)

	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "frequency":
			query = query.Where("frequency = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, RecurringInvoiceSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(templateModels)
}

// FindDue finds all active templates, across companies, whose next
// generation date has passed. Used by the batch generator, which is the
// one deliberate exception to company scoping here.
func (r *GormRecurringInvoiceRepository) FindDue(ctx context.Context, now time.Time) ([]finance.RecurringInvoice, error) {
	var templateModels []models.RecurringInvoiceModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("active = ? AND next_generation_date <= ?", true, now).
		Order("next_generation_date ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(templateModels)
}

// Save creates or updates a template
func (r *GormRecurringInvoiceRepository) Save(ctx context.Context, template *finance.RecurringInvoice) error {
	model := models.RecurringInvoiceModelFromDomain(template)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteForCompany deletes a template scoped to a company
func (r *GormRecurringInvoiceRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&models.RecurringInvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormRecurringInvoiceRepository) toDomainSlice(templateModels []models.RecurringInvoiceModel) ([]finance.RecurringInvoice, error) {
	templates := make([]finance.RecurringInvoice, len(templateModels))
	for i, model := range templateModels {
		template, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		templates[i] = *template
	}
	return templates, nil
}
