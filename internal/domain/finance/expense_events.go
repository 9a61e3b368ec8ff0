package finance

import (
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeExpense = "Expense"

// Event type constants
const (
	EventTypeExpenseCreated  = "ExpenseCreated"
	EventTypeExpenseApproved = "ExpenseApproved"
)

// ExpenseCreatedEvent is raised when a new expense is recorded
type ExpenseCreatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID `json:"expense_id"`
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
}

// NewExpenseCreatedEvent creates a new ExpenseCreatedEvent
func NewExpenseCreatedEvent(expense *Expense) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseCreated, AggregateTypeExpense, expense.ID, expense.CompanyID),
		ExpenseID:       expense.ID,
		Category:        expense.Category.String(),
		Amount:          expense.Amount.String(),
	}
}

// EventType returns the event type name
func (e *ExpenseCreatedEvent) EventType() string {
	return EventTypeExpenseCreated
}

// ExpenseApprovedEvent is raised when an expense is approved
type ExpenseApprovedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID `json:"expense_id"`
	Amount    string    `json:"amount"`
}

// NewExpenseApprovedEvent creates a new ExpenseApprovedEvent
func NewExpenseApprovedEvent(expense *Expense) *ExpenseApprovedEvent {
	return &ExpenseApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseApproved, AggregateTypeExpense, expense.ID, expense.CompanyID),
		ExpenseID:       expense.ID,
		Amount:          expense.Amount.String(),
	}
}

// EventType returns the event type name
func (e *ExpenseApprovedEvent) EventType() string {
	return EventTypeExpenseApproved
}
