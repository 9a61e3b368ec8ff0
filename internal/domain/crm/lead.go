package crm

import (
	"fmt"
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadStatus represents the position of a lead in the sales pipeline
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "NEW"
	LeadStatusContacted    LeadStatus = "CONTACTED"
	LeadStatusQualified    LeadStatus = "QUALIFIED"
	LeadStatusProposalSent LeadStatus = "PROPOSAL_SENT"
	LeadStatusNegotiation  LeadStatus = "NEGOTIATION"
	LeadStatusWon          LeadStatus = "WON"
	LeadStatusLost         LeadStatus = "LOST"
)

// IsValid checks if the status is a valid LeadStatus
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusProposalSent, LeadStatusNegotiation, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// String returns the string representation of LeadStatus
func (s LeadStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s LeadStatus) CanTransitionTo(target LeadStatus) bool {
	switch s {
	case LeadStatusNew:
		return target == LeadStatusContacted || target == LeadStatusLost
	case LeadStatusContacted:
		return target == LeadStatusQualified || target == LeadStatusLost
	case LeadStatusQualified:
		return target == LeadStatusProposalSent || target == LeadStatusLost
	case LeadStatusProposalSent:
		return target == LeadStatusNegotiation || target == LeadStatusWon || target == LeadStatusLost
	case LeadStatusNegotiation:
		return target == LeadStatusWon || target == LeadStatusLost
	case LeadStatusWon, LeadStatusLost:
		return false // Terminal states
	}
	return false
}

// Lead represents a pre-sales contact owned by one company. An accepted
// estimate converts the lead to WON.
type Lead struct {
	shared.TenantAggregateRoot
	Name        string
	Email       string
	Phone       string
	CompanyName string // the lead's own organisation, free text
	Status      LeadStatus
	Source      string
	Notes       string
	ConvertedAt *time.Time
}

// NewLead creates a new lead in the NEW status
func NewLead(companyID uuid.UUID, name, email, companyName string) (*Lead, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Lead email cannot be empty")
	}

	lead := &Lead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Name:                name,
		Email:               email,
		CompanyName:         companyName,
		Status:              LeadStatusNew,
	}

	lead.AddDomainEvent(NewLeadCreatedEvent(lead))

	return lead, nil
}

// Advance moves the lead one step along the pipeline
func (l *Lead) Advance(target LeadStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown lead status %s", target))
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move lead from %s to %s", l.Status, target))
	}
	if target == LeadStatusWon {
		l.MarkAsWon()
		return nil
	}

	l.Status = target
	l.Touch()

	return nil
}

// MarkAsWon transitions the lead to WON and records the conversion time.
// Idempotent: calling it on an already-won lead is a no-op, so convertedAt
// is never re-stamped.
func (l *Lead) MarkAsWon() {
	if l.Status == LeadStatusWon {
		return
	}

	now := time.Now()
	l.Status = LeadStatusWon
	l.ConvertedAt = &now
	l.UpdatedAt = now

	l.AddDomainEvent(NewLeadWonEvent(l))
}

// MarkAsLost transitions the lead to LOST
func (l *Lead) MarkAsLost() {
	l.Status = LeadStatusLost
	l.Touch()
}

// IsWon returns true if the lead has been won
func (l *Lead) IsWon() bool {
	return l.Status == LeadStatusWon
}

// SetNotes replaces the free-text notes
func (l *Lead) SetNotes(notes string) {
	l.Notes = notes
	l.Touch()
}

// SetSource records where the lead came from (website, referral, cold_call, ...)
func (l *Lead) SetSource(source string) {
	l.Source = source
	l.Touch()
}
