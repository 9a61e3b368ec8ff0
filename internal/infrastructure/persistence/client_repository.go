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

// GormClientRepository implements finance.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForCompany finds a client by ID scoped to a company
func (r *GormClientRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Client, error) {
	var model models.ClientModel
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

// FindByLead finds the client derived from a lead, if any
func (r *GormClientRepository) FindByLead(ctx context.Context, companyID, leadID uuid.UUID) (*finance.Client, error) {
	var model models.ClientModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND lead_id = ?", companyID, leadID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all clients for a company matching the filter
func (r *GormClientRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Client, error) {
	var clientModels []models.ClientModel
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ClientModel{}).Where("company_id = ?", companyID)

	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ClientSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]finance.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *finance.Client) error {
	model := models.ClientModelFromDomain(client)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteForCompany deletes a client scoped to a company
func (r *GormClientRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&models.ClientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
