package project

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// Task priority bounds
const (
	MinPriority = 1
	MaxPriority = 5
)

// Task represents a unit of work within a project. Tasks form a tree via
// ParentTaskID; the project enforces that the tree stays acyclic.
type Task struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	ParentTaskID *uuid.UUID
	Title        string
	Status       TaskStatus
	Priority     int // 1 (highest) to 5 (lowest)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTask creates a new task in TODO status
func NewTask(projectID uuid.UUID, title string, priority int) (*Task, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot be empty")
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Task priority must be between 1 and 5")
	}

	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
		Status:    TaskStatusTodo,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ChangeStatus moves the task to a new status
func (t *Task) ChangeStatus(status TaskStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown task status "+status.String())
	}

	t.Status = status
	t.UpdatedAt = time.Now()

	return nil
}

// ChangePriority updates the task priority
func (t *Task) ChangePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return shared.NewDomainError("INVALID_PRIORITY", "Task priority must be between 1 and 5")
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()

	return nil
}

// IsSubtask reports whether the task has a parent
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}
