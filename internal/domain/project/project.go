package project

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ProjectStatus
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ProjectStatus
func (s ProjectStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	switch s {
	case ProjectStatusPlanning:
		return target == ProjectStatusActive || target == ProjectStatusCancelled
	case ProjectStatusActive:
		return target == ProjectStatusOnHold || target == ProjectStatusCompleted || target == ProjectStatusCancelled
	case ProjectStatusOnHold:
		return target == ProjectStatusActive || target == ProjectStatusCancelled
	case ProjectStatusCompleted, ProjectStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Project represents a project aggregate root. It owns the task tree and the
// logged time, and carries the billing parameters used by the cost and
// profitability calculators.
type Project struct {
	shared.TenantAggregateRoot
	Name       string
	Code       string // Unique per company, e.g. PROJ-2026-042
	Status     ProjectStatus
	Budget     valueobject.Money
	HourlyRate valueobject.Money
	StartDate  time.Time
	EndDate    *time.Time
	EstimateID *uuid.UUID // Set when the project was derived from an estimate
	Tasks      []Task
	TimeLogs   []TimeLog
}

// NewProject creates a new project in PLANNING status.
// Budget and hourly rate must share one currency.
func NewProject(companyID uuid.UUID, name, code string, budget, hourlyRate valueobject.Money, startDate time.Time) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Project code cannot be empty")
	}
	if budget.Currency() != hourlyRate.Currency() {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Budget and hourly rate must use the same currency")
	}

	project := &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Name:                name,
		Code:                code,
		Status:              ProjectStatusPlanning,
		Budget:              budget,
		HourlyRate:          hourlyRate,
		StartDate:           startDate,
		Tasks:               make([]Task, 0),
		TimeLogs:            make([]TimeLog, 0),
	}

	project.AddDomainEvent(NewProjectCreatedEvent(project))

	return project, nil
}

// LinkEstimate records which estimate this project was derived from
func (p *Project) LinkEstimate(estimateID uuid.UUID) {
	p.EstimateID = &estimateID
	p.Touch()
}

// Activate transitions the project to ACTIVE
func (p *Project) Activate() error {
	if !p.Status.CanTransitionTo(ProjectStatusActive) {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate project in status "+p.Status.String())
	}

	p.Status = ProjectStatusActive
	p.Touch()

	return nil
}

// PutOnHold transitions the project to ON_HOLD
func (p *Project) PutOnHold() error {
	if !p.Status.CanTransitionTo(ProjectStatusOnHold) {
		return shared.NewDomainError("INVALID_STATE", "Cannot put project on hold in status "+p.Status.String())
	}

	p.Status = ProjectStatusOnHold
	p.Touch()

	return nil
}

// Complete transitions the project to COMPLETED and stamps the end date
func (p *Project) Complete() error {
	if !p.Status.CanTransitionTo(ProjectStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Cannot complete project in status "+p.Status.String())
	}

	now := time.Now()
	p.Status = ProjectStatusCompleted
	p.EndDate = &now
	p.UpdatedAt = now

	p.AddDomainEvent(NewProjectCompletedEvent(p))

	return nil
}

// Cancel transitions the project to CANCELLED
func (p *Project) Cancel() error {
	if !p.Status.CanTransitionTo(ProjectStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel project in status "+p.Status.String())
	}

	p.Status = ProjectStatusCancelled
	p.Touch()

	return nil
}

// AddTask adds a top-level task to the project
func (p *Project) AddTask(title string, priority int) (*Task, error) {
	task, err := NewTask(p.ID, title, priority)
	if err != nil {
		return nil, err
	}

	p.Tasks = append(p.Tasks, *task)
	p.Touch()

	return task, nil
}

// AttachSubtask re-parents an existing task under another task.
// Walks the proposed parent's ancestor chain and rejects the move when the
// child already appears in it, so the tree can never gain a cycle.
func (p *Project) AttachSubtask(parentID, childID uuid.UUID) error {
	if parentID == childID {
		return shared.NewDomainError("INVALID_HIERARCHY", "Task cannot be its own parent")
	}

	parent := p.findTask(parentID)
	if parent == nil {
		return shared.NewDomainError("NOT_FOUND", "Parent task not found")
	}
	child := p.findTask(childID)
	if child == nil {
		return shared.NewDomainError("NOT_FOUND", "Child task not found")
	}

	// Walk upwards from the parent. The visited set guards against a
	// corrupted tree looping forever.
	visited := map[uuid.UUID]bool{}
	for current := parent; current != nil && current.ParentTaskID != nil; {
		ancestorID := *current.ParentTaskID
		if ancestorID == childID {
			return shared.NewDomainError("INVALID_HIERARCHY", "Task cannot become its own ancestor")
		}
		if visited[ancestorID] {
			break
		}
		visited[ancestorID] = true
		current = p.findTask(ancestorID)
	}

	child.ParentTaskID = &parentID
	child.UpdatedAt = time.Now()
	p.Touch()

	return nil
}

func (p *Project) findTask(id uuid.UUID) *Task {
	for idx := range p.Tasks {
		if p.Tasks[idx].ID == id {
			return &p.Tasks[idx]
		}
	}
	return nil
}

// LogTime records hours worked on the project
func (p *Project) LogTime(description string, hours decimal.Decimal, loggedAt time.Time) (*TimeLog, error) {
	log, err := NewTimeLog(p.ID, description, hours, loggedAt)
	if err != nil {
		return nil, err
	}

	p.TimeLogs = append(p.TimeLogs, *log)
	p.Touch()

	return log, nil
}

// TotalHours sums the hours across all time logs
func (p *Project) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for idx := range p.TimeLogs {
		total = total.Add(p.TimeLogs[idx].Hours)
	}
	return total
}

// TimeLogCost computes hourly rate times total logged hours
func (p *Project) TimeLogCost() (valueobject.Money, error) {
	return p.HourlyRate.MultiplyDecimal(p.TotalHours())
}

// IsBudgetExceeded reports whether the logged time cost has passed the budget
func (p *Project) IsBudgetExceeded() (bool, error) {
	cost, err := p.TimeLogCost()
	if err != nil {
		return false, err
	}
	return cost.GreaterThan(p.Budget)
}
