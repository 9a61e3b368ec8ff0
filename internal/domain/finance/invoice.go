package finance

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid
	case InvoiceStatusPaid:
		return false // Terminal state
	}
	return false
}

// InvoiceLine represents a line on an invoice
type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   valueobject.Money
	VATRate     decimal.Decimal // Fraction, e.g. 0.10 for 10%
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoiceLine creates a new invoice line
func NewInvoiceLine(invoiceID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*InvoiceLine, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	now := time.Now()
	return &InvoiceLine{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Subtotal returns quantity * unit price for this line
func (l *InvoiceLine) Subtotal() (valueobject.Money, error) {
	return l.UnitPrice.Multiply(l.Quantity)
}

// VATAmount returns the VAT for this line, rounded at the line level
func (l *InvoiceLine) VATAmount() (valueobject.Money, error) {
	subtotal, err := l.Subtotal()
	if err != nil {
		return valueobject.Money{}, err
	}
	bp := l.VATRate.Mul(decimal.NewFromInt(10000)).Round(0).IntPart()
	return subtotal.MultiplyBasisPoints(bp)
}

// Invoice represents an invoice aggregate root
type Invoice struct {
	shared.TenantAggregateRoot
	Number      string
	ClientID    uuid.UUID
	ProjectID   *uuid.UUID // Set when the invoice bills project work
	Status      InvoiceStatus
	Currency    valueobject.Currency
	Lines       []InvoiceLine
	Subtotal    valueobject.Money
	TotalVAT    valueobject.Money
	Total       valueobject.Money
	IssuedAt    *time.Time
	PaidAt      *time.Time
	DueDate     *time.Time
	IsRecurring bool // Generated from a recurring template
}

// NewInvoice creates a new invoice in draft status
func NewInvoice(companyID uuid.UUID, number string, clientID uuid.UUID, currency valueobject.Currency) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invalid currency: "+currency.String())
	}

	invoice := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Number:              number,
		ClientID:            clientID,
		Status:              InvoiceStatusDraft,
		Currency:            currency,
		Lines:               make([]InvoiceLine, 0),
		Subtotal:            valueobject.Zero(currency),
		TotalVAT:            valueobject.Zero(currency),
		Total:               valueobject.Zero(currency),
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// LinkProject associates the invoice with the project it bills
func (i *Invoice) LinkProject(projectID uuid.UUID) {
	i.ProjectID = &projectID
	i.Touch()
}

// AddLine adds a line to the invoice and recomputes totals
// Only allowed in DRAFT status
func (i *Invoice) AddLine(description string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*InvoiceLine, error) {
	if i.Status != InvoiceStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft invoice")
	}
	if unitPrice.Currency() != i.Currency {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Line currency does not match invoice currency")
	}

	line, err := NewInvoiceLine(i.ID, description, quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}

	i.Lines = append(i.Lines, *line)
	if err := i.recalculateTotals(); err != nil {
		i.Lines = i.Lines[:len(i.Lines)-1]
		return nil, err
	}
	i.UpdatedAt = time.Now()

	return line, nil
}

// RemoveLine removes a line from the invoice and recomputes totals
// Only allowed in DRAFT status
func (i *Invoice) RemoveLine(lineID uuid.UUID) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft invoice")
	}

	for idx, line := range i.Lines {
		if line.ID == lineID {
			i.Lines = append(i.Lines[:idx], i.Lines[idx+1:]...)
			if err := i.recalculateTotals(); err != nil {
				return err
			}
			i.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Invoice line not found")
}

func (i *Invoice) recalculateTotals() error {
	subtotal := valueobject.Zero(i.Currency)
	totalVAT := valueobject.Zero(i.Currency)

	for idx := range i.Lines {
		lineSubtotal, err := i.Lines[idx].Subtotal()
		if err != nil {
			return err
		}
		lineVAT, err := i.Lines[idx].VATAmount()
		if err != nil {
			return err
		}
		subtotal, err = subtotal.Add(lineSubtotal)
		if err != nil {
			return err
		}
		totalVAT, err = totalVAT.Add(lineVAT)
		if err != nil {
			return err
		}
	}

	total, err := subtotal.Add(totalVAT)
	if err != nil {
		return err
	}

	i.Subtotal = subtotal
	i.TotalVAT = totalVAT
	i.Total = total

	return nil
}

// Finalize transitions the invoice from DRAFT to SENT.
// One-way: a sent invoice can never return to draft.
func (i *Invoice) Finalize() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be finalized")
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot finalize an invoice without lines")
	}

	now := time.Now()
	i.Status = InvoiceStatusSent
	i.IssuedAt = &now
	i.UpdatedAt = now

	i.AddDomainEvent(NewInvoiceFinalizedEvent(i))

	return nil
}

// MarkPaid transitions the invoice from SENT to PAID
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only sent invoices can be marked paid")
	}

	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now

	i.AddDomainEvent(NewInvoicePaidEvent(i))

	return nil
}

// SetDueDate sets the payment due date
func (i *Invoice) SetDueDate(dueDate time.Time) {
	i.DueDate = &dueDate
	i.Touch()
}

// CanBeDeleted reports whether the invoice may still be removed
func (i *Invoice) CanBeDeleted() bool {
	return i.Status == InvoiceStatusDraft
}

// IsPaid reports whether the invoice has been paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
