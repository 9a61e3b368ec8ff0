package finance

import (
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a billable customer. Clients are usually derived from a
// won lead at conversion time but can also be created directly.
type Client struct {
	shared.TenantAggregateRoot
	Name   string
	Email  string
	Phone  string
	LeadID *uuid.UUID // Set when the client was derived from a lead
}

// NewClient creates a new client
func NewClient(companyID uuid.UUID, name, email string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Name:                name,
		Email:               email,
	}, nil
}

// NewClientFromLead derives a client from a won lead's contact details
func NewClientFromLead(companyID uuid.UUID, leadID uuid.UUID, name, email string) (*Client, error) {
	client, err := NewClient(companyID, name, email)
	if err != nil {
		return nil, err
	}
	client.LeadID = &leadID
	return client, nil
}
