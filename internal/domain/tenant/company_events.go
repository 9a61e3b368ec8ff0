package tenant

import (
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated = "CompanyCreated"
)

// CompanyCreatedEvent is raised when a new company signs up
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID, company.ID),
		TenantID:        company.ID,
		Name:            company.Name,
		Subdomain:       company.Subdomain,
	}
}

// EventType returns the event type name
func (e *CompanyCreatedEvent) EventType() string {
	return EventTypeCompanyCreated
}
