package project

import (
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProject = "Project"

// Event type constants
const (
	EventTypeProjectCreated   = "ProjectCreated"
	EventTypeProjectCompleted = "ProjectCompleted"
)

// ProjectCreatedEvent is raised when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Budget    string    `json:"budget"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, p.ID, p.CompanyID),
		ProjectID:       p.ID,
		Name:            p.Name,
		Code:            p.Code,
		Budget:          p.Budget.String(),
	}
}

// EventType returns the event type name
func (e *ProjectCreatedEvent) EventType() string {
	return EventTypeProjectCreated
}

// ProjectCompletedEvent is raised when a project finishes
type ProjectCompletedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Code      string    `json:"code"`
}

// NewProjectCompletedEvent creates a new ProjectCompletedEvent
func NewProjectCompletedEvent(p *Project) *ProjectCompletedEvent {
	return &ProjectCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCompleted, AggregateTypeProject, p.ID, p.CompanyID),
		ProjectID:       p.ID,
		Code:            p.Code,
	}
}

// EventType returns the event type name
func (e *ProjectCompletedEvent) EventType() string {
	return EventTypeProjectCompleted
}
