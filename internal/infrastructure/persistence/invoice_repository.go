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

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForCompany finds an invoice by ID scoped to a company
func (r *GormInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Invoice, error) {
	var model models.InvoiceModel
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

// FindByNumber finds an invoice by number for a company
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*finance.Invoice, error) {
	var model models.InvoiceModel
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

// FindAllForCompany finds all invoices for a company matching the filter
func (r *GormInvoiceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels)
}

// FindByStatus finds invoices by status for a company
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status finance.InvoiceStatus, filter shared.Filter) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.InvoiceModel{}).
			Preload("Lines").
			Where("company_id = ? AND status = ?", companyID, status),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels)
}

// FindPaidByProject finds paid invoices billed against a project
func (r *GormInvoiceRepository) FindPaidByProject(ctx context.Context, companyID, projectID uuid.UUID) ([]finance.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND project_id = ? AND status = ?", companyID, projectID, finance.InvoiceStatusPaid).
		Order("paid_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(invoiceModels)
}

// Save creates or updates an invoice together with its lines.
// Lines are replaced wholesale so removed lines do not linger.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", model.ID).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
}

// DeleteForCompany deletes an invoice scoped to a company.
// Callers must check CanBeDeleted first.
func (r *GormInvoiceRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineModel{}).Error
	})
}

// CountForCompany counts invoices for a company matching the filter
func (r *GormInvoiceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.InvoiceModel{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an invoice number exists for a company
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("company_id = ? AND number = ?", companyID, strings.ToUpper(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextInvoiceNumber generates the next invoice number for a company,
// e.g. INV-2026-0042
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	counter, err := nextSeriesNumber(dbFrom(ctx, r.db).WithContext(ctx), companyID, seriesInvoice, year)
	if err != nil {
		return "", err
	}
	return formatSeriesNumber(seriesInvoice, year, counter, 4), nil
}

// NextRecurringInvoiceNumber generates the next number in the dedicated
// recurring series for a company, e.g. INV-REC-2026-0007
func (r *GormInvoiceRepository) NextRecurringInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	counter, err := nextSeriesNumber(dbFrom(ctx, r.db).WithContext(ctx), companyID, seriesRecurringInvoice, year)
	if err != nil {
		return "", err
	}
	return formatSeriesNumber(seriesRecurringInvoice, year, counter, 4), nil
}

func (r *GormInvoiceRepository) toDomainSlice(invoiceModels []models.InvoiceModel) ([]finance.Invoice, error) {
	invoices := make([]finance.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoice, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		invoices[i] = *invoice
	}
	return invoices, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "project_id":
			query = query.Where("project_id = ?", value)
		case "is_recurring":
			query = query.Where("is_recurring = ?", value)
		}
	}

	return query
}
