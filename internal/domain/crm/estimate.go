package crm

import (
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimateStatus represents the status of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "DRAFT"
	EstimateStatusSent     EstimateStatus = "SENT"
	EstimateStatusAccepted EstimateStatus = "ACCEPTED"
	EstimateStatusRejected EstimateStatus = "REJECTED"
	EstimateStatusExpired  EstimateStatus = "EXPIRED"
)

// DefaultValidityDays is applied when no validity window is supplied
const DefaultValidityDays = 30

// IsValid checks if the status is a valid EstimateStatus
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of EstimateStatus
func (s EstimateStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s EstimateStatus) CanTransitionTo(target EstimateStatus) bool {
	switch s {
	case EstimateStatusDraft:
		return target == EstimateStatusSent
	case EstimateStatusSent:
		return target == EstimateStatusAccepted || target == EstimateStatusRejected || target == EstimateStatusExpired
	case EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired:
		return false // Terminal states
	}
	return false
}

// EstimateLine represents a line on an estimate
type EstimateLine struct {
	ID          uuid.UUID
	EstimateID  uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   valueobject.Money
	VATRate     decimal.Decimal // Fraction, e.g. 0.10 for 10%
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEstimateLine creates a new estimate line
func NewEstimateLine(estimateID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*EstimateLine, error) {
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
	return &EstimateLine{
		ID:          uuid.New(),
		EstimateID:  estimateID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Subtotal returns quantity * unit price for this line
func (l *EstimateLine) Subtotal() (valueobject.Money, error) {
	return l.UnitPrice.Multiply(l.Quantity)
}

// VATAmount returns the VAT for this line, rounded at the line level
func (l *EstimateLine) VATAmount() (valueobject.Money, error) {
	subtotal, err := l.Subtotal()
	if err != nil {
		return valueobject.Money{}, err
	}
	bp := l.VATRate.Mul(decimal.NewFromInt(10000)).Round(0).IntPart()
	return subtotal.MultiplyBasisPoints(bp)
}

// Estimate represents an estimate aggregate root
// It carries the priced proposal for a lead from draft through acceptance
type Estimate struct {
	shared.TenantAggregateRoot
	Number       string
	LeadID       uuid.UUID
	LeadName     string // Denormalized for display and project naming
	LeadEmail    string
	Status       EstimateStatus
	Currency     valueobject.Currency
	Lines        []EstimateLine
	Subtotal     valueobject.Money
	TotalVAT     valueobject.Money
	Total        valueobject.Money
	ValidityDays int
	ExpiresAt    *time.Time
	SentAt       *time.Time
	AcceptedAt   *time.Time
	RejectedAt   *time.Time
}

// NewEstimate creates a new estimate in draft status for a lead
func NewEstimate(companyID uuid.UUID, number string, lead *Lead, currency valueobject.Currency, validityDays int) (*Estimate, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Estimate number cannot be empty")
	}
	if lead == nil {
		return nil, shared.NewDomainError("INVALID_LEAD", "Lead cannot be nil")
	}
	if lead.CompanyID != companyID {
		return nil, shared.NewDomainError("TENANT_REQUIRED", "Lead belongs to a different company")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invalid currency: "+currency.String())
	}
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}

	estimate := &Estimate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Number:              number,
		LeadID:              lead.ID,
		LeadName:            lead.Name,
		LeadEmail:           lead.Email,
		Status:              EstimateStatusDraft,
		Currency:            currency,
		Lines:               make([]EstimateLine, 0),
		Subtotal:            valueobject.Zero(currency),
		TotalVAT:            valueobject.Zero(currency),
		Total:               valueobject.Zero(currency),
		ValidityDays:        validityDays,
	}

	estimate.AddDomainEvent(NewEstimateCreatedEvent(estimate))

	return estimate, nil
}

// AddLine adds a line to the estimate and recomputes totals
// Only allowed in DRAFT status
func (e *Estimate) AddLine(description string, quantity int64, unitPrice valueobject.Money, vatRate decimal.Decimal) (*EstimateLine, error) {
	if e.Status != EstimateStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft estimate")
	}
	if unitPrice.Currency() != e.Currency {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", "Line currency does not match estimate currency")
	}

	line, err := NewEstimateLine(e.ID, description, quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}

	e.Lines = append(e.Lines, *line)
	if err := e.recalculateTotals(); err != nil {
		e.Lines = e.Lines[:len(e.Lines)-1]
		return nil, err
	}
	e.UpdatedAt = time.Now()

	return line, nil
}

// RemoveLine removes a line from the estimate and recomputes totals
// Only allowed in DRAFT status
func (e *Estimate) RemoveLine(lineID uuid.UUID) error {
	if e.Status != EstimateStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft estimate")
	}

	for idx, line := range e.Lines {
		if line.ID == lineID {
			e.Lines = append(e.Lines[:idx], e.Lines[idx+1:]...)
			if err := e.recalculateTotals(); err != nil {
				return err
			}
			e.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("NOT_FOUND", "Estimate line not found")
}

// recalculateTotals recomputes subtotal, VAT and total from the lines
// VAT is rounded per line before summation
func (e *Estimate) recalculateTotals() error {
	subtotal := valueobject.Zero(e.Currency)
	totalVAT := valueobject.Zero(e.Currency)

	for idx := range e.Lines {
		lineSubtotal, err := e.Lines[idx].Subtotal()
		if err != nil {
			return err
		}
		lineVAT, err := e.Lines[idx].VATAmount()
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

	e.Subtotal = subtotal
	e.TotalVAT = totalVAT
	e.Total = total

	return nil
}

// Send transitions the estimate to SENT and starts the validity window
func (e *Estimate) Send() error {
	if !e.Status.CanTransitionTo(EstimateStatusSent) {
		return shared.NewDomainError("INVALID_STATE", "Cannot send estimate in status "+e.Status.String())
	}
	if len(e.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot send an estimate without lines")
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, e.ValidityDays)
	e.Status = EstimateStatusSent
	e.SentAt = &now
	e.ExpiresAt = &expiresAt
	e.UpdatedAt = now

	e.AddDomainEvent(NewEstimateSentEvent(e))

	return nil
}

// Accept transitions the estimate to ACCEPTED
// Fails with ALREADY_EXPIRED when the validity window has passed
func (e *Estimate) Accept() error {
	if !e.Status.CanTransitionTo(EstimateStatusAccepted) {
		return shared.NewDomainError("INVALID_STATE", "Cannot accept estimate in status "+e.Status.String())
	}
	if e.IsExpired() {
		return shared.NewDomainError("ALREADY_EXPIRED", "Estimate validity window has passed")
	}

	now := time.Now()
	e.Status = EstimateStatusAccepted
	e.AcceptedAt = &now
	e.UpdatedAt = now

	e.AddDomainEvent(NewEstimateAcceptedEvent(e))

	return nil
}

// Reject transitions the estimate to REJECTED
func (e *Estimate) Reject() error {
	if !e.Status.CanTransitionTo(EstimateStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", "Cannot reject estimate in status "+e.Status.String())
	}

	now := time.Now()
	e.Status = EstimateStatusRejected
	e.RejectedAt = &now
	e.UpdatedAt = now

	return nil
}

// MarkExpired transitions a sent estimate past its validity window to EXPIRED
func (e *Estimate) MarkExpired() error {
	if !e.Status.CanTransitionTo(EstimateStatusExpired) {
		return shared.NewDomainError("INVALID_STATE", "Cannot expire estimate in status "+e.Status.String())
	}
	if !e.IsExpired() {
		return shared.NewDomainError("INVALID_STATE", "Estimate validity window has not passed")
	}

	e.Status = EstimateStatusExpired
	e.UpdatedAt = time.Now()

	return nil
}

// IsExpired reports whether the validity window has passed
func (e *Estimate) IsExpired() bool {
	return e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt)
}

// IsAccepted reports whether the estimate has been accepted
func (e *Estimate) IsAccepted() bool {
	return e.Status == EstimateStatusAccepted
}
