package project

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLog represents hours worked against a project
type TimeLog struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Description string
	Hours       decimal.Decimal
	LoggedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTimeLog creates a new time log entry
func NewTimeLog(projectID uuid.UUID, description string, hours decimal.Decimal, loggedAt time.Time) (*TimeLog, error) {
	if hours.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_HOURS", "Logged hours must be positive")
	}
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	now := time.Now()
	return &TimeLog{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Description: description,
		Hours:       hours,
		LoggedAt:    loggedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
