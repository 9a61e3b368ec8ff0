package tenant

import (
	"context"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence.
// Companies are the tenant root, so lookups here are not tenant-scoped.
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindBySubdomain finds a company by its subdomain
	FindBySubdomain(ctx context.Context, subdomain string) (*Company, error)

	// FindFirst returns the oldest registered company.
	// Development fallback when no tenant can be resolved from the request.
	FindFirst(ctx context.Context) (*Company, error)

	// FindAll finds all companies with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// ExistsBySubdomain checks if a subdomain is taken
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
}
