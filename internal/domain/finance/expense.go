package finance

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryTravel      ExpenseCategory = "TRAVEL"
	ExpenseCategorySoftware    ExpenseCategory = "SOFTWARE"
	ExpenseCategoryEquipment   ExpenseCategory = "EQUIPMENT"
	ExpenseCategorySubcontract ExpenseCategory = "SUBCONTRACT"
	ExpenseCategoryOffice      ExpenseCategory = "OFFICE"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryTravel, ExpenseCategorySoftware, ExpenseCategoryEquipment,
		ExpenseCategorySubcontract, ExpenseCategoryOffice, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// ExpenseStatus represents the status of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
	ExpenseStatusPaid     ExpenseStatus = "PAID"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected, ExpenseStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ExpenseStatus) CanTransitionTo(target ExpenseStatus) bool {
	switch s {
	case ExpenseStatusPending:
		return target == ExpenseStatusApproved || target == ExpenseStatusRejected
	case ExpenseStatusApproved:
		return target == ExpenseStatusPaid
	case ExpenseStatusRejected, ExpenseStatusPaid:
		return false // Terminal states
	}
	return false
}

// CountsAsCost reports whether the expense should be included in project
// cost calculations. Only approved and paid expenses count.
func (s ExpenseStatus) CountsAsCost() bool {
	return s == ExpenseStatusApproved || s == ExpenseStatusPaid
}

// Expense represents a company expense, optionally attributed to a project
type Expense struct {
	shared.TenantAggregateRoot
	Description string
	Category    ExpenseCategory
	Amount      valueobject.Money
	Status      ExpenseStatus
	ProjectID   *uuid.UUID
	ExpenseDate time.Time
	ReceiptKey  string // Object storage key of the uploaded receipt, if any
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	PaidAt      *time.Time
}

// NewExpense creates a new expense in PENDING status
func NewExpense(companyID uuid.UUID, description string, category ExpenseCategory, amount valueobject.Money, expenseDate time.Time) (*Expense, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category "+category.String())
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Description:         description,
		Category:            category,
		Amount:              amount,
		Status:              ExpenseStatusPending,
		ExpenseDate:         expenseDate,
	}

	expense.AddDomainEvent(NewExpenseCreatedEvent(expense))

	return expense, nil
}

// LinkProject attributes the expense to a project
func (e *Expense) LinkProject(projectID uuid.UUID) error {
	if e.Status != ExpenseStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot re-attribute a non-pending expense")
	}

	e.ProjectID = &projectID
	e.Touch()

	return nil
}

// AttachReceipt records the storage key of an uploaded receipt
func (e *Expense) AttachReceipt(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_RECEIPT", "Receipt key cannot be empty")
	}

	e.ReceiptKey = key
	e.Touch()

	return nil
}

// Approve transitions the expense from PENDING to APPROVED
func (e *Expense) Approve() error {
	if !e.Status.CanTransitionTo(ExpenseStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be approved")
	}

	now := time.Now()
	e.Status = ExpenseStatusApproved
	e.ApprovedAt = &now
	e.UpdatedAt = now

	e.AddDomainEvent(NewExpenseApprovedEvent(e))

	return nil
}

// Reject transitions the expense from PENDING to REJECTED
func (e *Expense) Reject() error {
	if !e.Status.CanTransitionTo(ExpenseStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be rejected")
	}

	now := time.Now()
	e.Status = ExpenseStatusRejected
	e.RejectedAt = &now
	e.UpdatedAt = now

	return nil
}

// MarkPaid transitions the expense from APPROVED to PAID
func (e *Expense) MarkPaid() error {
	if !e.Status.CanTransitionTo(ExpenseStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", "Only approved expenses can be paid")
	}

	now := time.Now()
	e.Status = ExpenseStatusPaid
	e.PaidAt = &now
	e.UpdatedAt = now

	return nil
}
