package project

import (
	"context"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByIDForCompany finds a project by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Project, error)

	// FindByCode finds a project by its code for a company
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Project, error)

	// FindAllForCompany finds all projects for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Project, error)

	// FindByStatus finds projects by status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status ProjectStatus, filter shared.Filter) ([]Project, error)

	// Save creates or updates a project together with its tasks and time logs
	Save(ctx context.Context, project *Project) error

	// DeleteForCompany deletes a project scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// CountForCompany counts projects for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a project code exists for a company
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)

	// NextProjectCode generates the next unique project code for a company
	NextProjectCode(ctx context.Context, companyID uuid.UUID) (string, error)
}
