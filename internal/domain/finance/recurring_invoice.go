package finance

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Frequency represents how often a recurring invoice is generated
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// IsValid checks if the frequency is a valid Frequency
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// String returns the string representation of Frequency
func (f Frequency) String() string {
	return string(f)
}

// Next returns the given time advanced by one period
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// RecurringInvoice is a template from which invoices are generated on a
// schedule. The schedule is not anchored: the next generation date is always
// one period from the moment of generation, not from the previous due date,
// so a late batch run shifts all subsequent dates.
type RecurringInvoice struct {
	shared.TenantAggregateRoot
	ClientID           uuid.UUID
	Description        string
	Amount             valueobject.Money
	Frequency          Frequency
	DayOfMonth         int // Informational only, not consulted by scheduling
	DayOfWeek          int // Informational only, not consulted by scheduling
	Active             bool
	StartDate          time.Time
	EndDate            *time.Time
	LastGeneratedAt    *time.Time
	NextGenerationDate time.Time
}

// NewRecurringInvoice creates a new active recurring invoice template.
// The first generation is due one period from now.
func NewRecurringInvoice(companyID, clientID uuid.UUID, description string, amount valueobject.Money, frequency Frequency, startDate time.Time) (*RecurringInvoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Unknown frequency "+frequency.String())
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Recurring amount must be positive")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	return &RecurringInvoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		ClientID:            clientID,
		Description:         description,
		Amount:              amount,
		Frequency:           frequency,
		Active:              true,
		StartDate:           startDate,
		NextGenerationDate:  frequency.Next(time.Now()),
	}, nil
}

// SetEndDate limits the template's lifetime
func (r *RecurringInvoice) SetEndDate(endDate time.Time) {
	r.EndDate = &endDate
	r.Touch()
}

// Deactivate stops further generation without deleting the template
func (r *RecurringInvoice) Deactivate() {
	r.Active = false
	r.Touch()
}

// Activate resumes generation
func (r *RecurringInvoice) Activate() {
	r.Active = true
	r.Touch()
}

// ShouldGenerate reports whether the template is due for generation
func (r *RecurringInvoice) ShouldGenerate(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.EndDate != nil && r.EndDate.Before(now) {
		return false
	}
	return !r.NextGenerationDate.After(now)
}

// MarkGenerated records a successful generation and advances the schedule
// one period from now
func (r *RecurringInvoice) MarkGenerated(now time.Time) {
	r.LastGeneratedAt = &now
	r.NextGenerationDate = r.Frequency.Next(now)
	r.UpdatedAt = now
}
