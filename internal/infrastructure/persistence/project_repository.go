package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bizkit/backend/internal/domain/project"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements project.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByIDForCompany finds a project by ID scoped to a company
func (r *GormProjectRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Tasks").
		Preload("TimeLogs").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCode finds a project by its code for a company
func (r *GormProjectRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*project.Project, error) {
	var model models.ProjectModel
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Tasks").
		Preload("TimeLogs").
		Where("company_id = ? AND code = ?", companyID, strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllForCompany finds all projects for a company matching the filter
func (r *GormProjectRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	var projectModels []models.ProjectModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ProjectModel{}).
			Preload("Tasks").
			Preload("TimeLogs").
			Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(projectModels)
}

// FindByStatus finds projects by status for a company
func (r *GormProjectRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status project.ProjectStatus, filter shared.Filter) ([]project.Project, error) {
	var projectModels []models.ProjectModel
	query := r.applyFilter(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ProjectModel{}).
			Preload("Tasks").
			Preload("TimeLogs").
			Where("company_id = ? AND status = ?", companyID, status),
		filter,
	)

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(projectModels)
}

// Save creates or updates a project together with its tasks and time logs.
// Children are replaced wholesale so removed entries do not linger.
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks", "TimeLogs").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", model.ID).Delete(&models.TaskModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", model.ID).Delete(&models.TimeLogModel{}).Error; err != nil {
			return err
		}
		if len(model.Tasks) > 0 {
			if err := tx.Create(&model.Tasks).Error; err != nil {
				return err
			}
		}
		if len(model.TimeLogs) > 0 {
			if err := tx.Create(&model.TimeLogs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForCompany deletes a project scoped to a company
func (r *GormProjectRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&models.ProjectModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.TaskModel{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", id).Delete(&models.TimeLogModel{}).Error
	})
}

// CountForCompany counts projects for a company matching the filter
func (r *GormProjectRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFrom(ctx, r.db).WithContext(ctx).Model(&models.ProjectModel{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a project code exists for a company
func (r *GormProjectRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("company_id = ? AND code = ?", companyID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextProjectCode generates the next project code for a company,
// e.g. PROJ-2026-042
func (r *GormProjectRepository) NextProjectCode(ctx context.Context, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	counter, err := nextSeriesNumber(dbFrom(ctx, r.db).WithContext(ctx), companyID, seriesProject, year)
	if err != nil {
		return "", err
	}
	return formatSeriesNumber(seriesProject, year, counter, 3), nil
}

func (r *GormProjectRepository) toDomainSlice(projectModels []models.ProjectModel) ([]project.Project, error) {
	projects := make([]project.Project, len(projectModels))
	for i, model := range projectModels {
		p, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		projects[i] = *p
	}
	return projects, nil
}

// applyFilter applies filter options to the query
func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProjectSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProjectRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "estimate_id":
			query = query.Where("estimate_id = ?", value)
		}
	}

	return query
}
