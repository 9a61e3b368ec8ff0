package crm

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeLead = "Lead"

// Event type constants
const (
	EventTypeLeadCreated = "LeadCreated"
	EventTypeLeadWon     = "LeadWon"
)

// LeadCreatedEvent is raised when a new lead enters the pipeline
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID `json:"lead_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Source string    `json:"source,omitempty"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID, lead.CompanyID),
		LeadID:          lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Source:          lead.Source,
	}
}

// EventType returns the event type name
func (e *LeadCreatedEvent) EventType() string {
	return EventTypeLeadCreated
}

// LeadWonEvent is raised the first time a lead transitions to WON
type LeadWonEvent struct {
	shared.BaseDomainEvent
	LeadID      uuid.UUID `json:"lead_id"`
	Name        string    `json:"name"`
	ConvertedAt time.Time `json:"converted_at"`
}

// NewLeadWonEvent creates a new LeadWonEvent
func NewLeadWonEvent(lead *Lead) *LeadWonEvent {
	convertedAt := time.Now()
	if lead.ConvertedAt != nil {
		convertedAt = *lead.ConvertedAt
	}
	return &LeadWonEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadWon, AggregateTypeLead, lead.ID, lead.CompanyID),
		LeadID:          lead.ID,
		Name:            lead.Name,
		ConvertedAt:     convertedAt,
	}
}

// EventType returns the event type name
func (e *LeadWonEvent) EventType() string {
	return EventTypeLeadWon
}
