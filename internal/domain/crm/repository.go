package crm

import (
	"context"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByIDForCompany finds a lead by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Lead, error)

	// FindAllForCompany finds all leads for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindByStatus finds leads by status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status LeadStatus, filter shared.Filter) ([]Lead, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// DeleteForCompany deletes a lead scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// CountForCompany counts leads for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// EstimateRepository defines the interface for estimate persistence
type EstimateRepository interface {
	// FindByIDForCompany finds an estimate by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Estimate, error)

	// FindByNumber finds an estimate by number for a company
	FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*Estimate, error)

	// FindAllForCompany finds all estimates for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Estimate, error)

	// FindByLead finds estimates for a lead
	FindByLead(ctx context.Context, companyID, leadID uuid.UUID) ([]Estimate, error)

	// Save creates or updates an estimate together with its lines
	Save(ctx context.Context, estimate *Estimate) error

	// DeleteForCompany deletes an estimate scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// ExistsByNumber checks if an estimate number exists for a company
	ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error)

	// NextEstimateNumber generates the next estimate number for a company
	NextEstimateNumber(ctx context.Context, companyID uuid.UUID) (string, error)
}
