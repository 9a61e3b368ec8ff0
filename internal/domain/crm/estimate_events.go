package crm

import (
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeEstimate = "Estimate"

// Event type constants
const (
	EventTypeEstimateCreated  = "EstimateCreated"
	EventTypeEstimateSent     = "EstimateSent"
	EventTypeEstimateAccepted = "EstimateAccepted"
)

// EstimateCreatedEvent is raised when a new estimate is drafted
type EstimateCreatedEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID `json:"estimate_id"`
	Number     string    `json:"number"`
	LeadID     uuid.UUID `json:"lead_id"`
}

// NewEstimateCreatedEvent creates a new EstimateCreatedEvent
func NewEstimateCreatedEvent(estimate *Estimate) *EstimateCreatedEvent {
	return &EstimateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateCreated, AggregateTypeEstimate, estimate.ID, estimate.CompanyID),
		EstimateID:      estimate.ID,
		Number:          estimate.Number,
		LeadID:          estimate.LeadID,
	}
}

// EventType returns the event type name
func (e *EstimateCreatedEvent) EventType() string {
	return EventTypeEstimateCreated
}

// EstimateSentEvent is raised when an estimate is sent to the lead
type EstimateSentEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID `json:"estimate_id"`
	Number     string    `json:"number"`
	Total      string    `json:"total"`
}

// NewEstimateSentEvent creates a new EstimateSentEvent
func NewEstimateSentEvent(estimate *Estimate) *EstimateSentEvent {
	return &EstimateSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateSent, AggregateTypeEstimate, estimate.ID, estimate.CompanyID),
		EstimateID:      estimate.ID,
		Number:          estimate.Number,
		Total:           estimate.Total.String(),
	}
}

// EventType returns the event type name
func (e *EstimateSentEvent) EventType() string {
	return EventTypeEstimateSent
}

// EstimateAcceptedEvent is raised when the lead accepts an estimate
type EstimateAcceptedEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID `json:"estimate_id"`
	Number     string    `json:"number"`
	LeadID     uuid.UUID `json:"lead_id"`
	Total      string    `json:"total"`
}

// NewEstimateAcceptedEvent creates a new EstimateAcceptedEvent
func NewEstimateAcceptedEvent(estimate *Estimate) *EstimateAcceptedEvent {
	return &EstimateAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateAccepted, AggregateTypeEstimate, estimate.ID, estimate.CompanyID),
		EstimateID:      estimate.ID,
		Number:          estimate.Number,
		LeadID:          estimate.LeadID,
		Total:           estimate.Total.String(),
	}
}

// EventType returns the event type name
func (e *EstimateAcceptedEvent) EventType() string {
	return EventTypeEstimateAccepted
}
