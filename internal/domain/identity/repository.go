package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByIDForCompany finds a user by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email across companies.
	// Used by login, which runs before any tenant is resolved.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
