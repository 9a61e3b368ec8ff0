package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForCompany finds an expense by ID scoped to a company
func (r *GormExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// FindAllForCompany finds all expenses for a company matching the filter
func (r *GormExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ExpenseModel{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(expenseModels)
}

// FindByProject finds expenses attributed to a project
func (r *GormExpenseRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND project_id = ?", companyID, projectID).
		Order("expense_date ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(expenseModels)
}

// FindByStatus finds expenses by status for a company
func (r *GormExpenseRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status finance.ExpenseStatus, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ExpenseModel{}).
			Where("company_id = ? AND status = ?", companyID, status),
		filter,
	)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(expenseModels)
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteForCompany deletes an expense scoped to a company
func (r *GormExpenseRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) toDomainSlice(expenseModels []models.ExpenseModel) ([]finance.Expense, error) {
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expense, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		expenses[i] = *expense
	}
	return expenses, nil
}

// applyFilter applies filter options to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "project_id":
			query = query.Where("project_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
