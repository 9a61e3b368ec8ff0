package tenant

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
)

// CompanyStatus represents the status of a company
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended" // Suspended for payment or policy reasons
	CompanyStatusCancelled CompanyStatus = "cancelled"
)

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusSuspended, CompanyStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CompanyStatus
func (s CompanyStatus) String() string {
	return string(s)
}

// Plan represents the subscription plan of a company
type Plan string

const (
	PlanFree       Plan = "free"
	PlanStarter    Plan = "starter"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// IsValid checks if the plan is a valid Plan
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// Company represents a tenant in the multi-tenant system. Every other
// aggregate carries a reference to exactly one company, set at construction.
type Company struct {
	shared.BaseAggregateRoot
	Name        string        `gorm:"type:varchar(200);not null"`
	Subdomain   string        `gorm:"type:varchar(63);not null;uniqueIndex"`
	Status      CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Plan        Plan          `gorm:"type:varchar(20);not null;default:'free'"`
	SuspendedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new active company
func NewCompany(name, subdomain string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if len(subdomain) > 63 || !subdomainPattern.MatchString(subdomain) {
		return nil, shared.NewDomainError("INVALID_SUBDOMAIN", "Subdomain must be lowercase alphanumeric with hyphens")
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Subdomain:         subdomain,
		Status:            CompanyStatusActive,
		Plan:              PlanFree,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// ChangePlan moves the company to a different subscription plan
func (c *Company) ChangePlan(plan Plan) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Unknown plan "+string(plan))
	}

	c.Plan = plan
	c.Touch()

	return nil
}

// Suspend blocks the company's access without deleting data
func (c *Company) Suspend() error {
	if c.Status != CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active companies can be suspended")
	}

	now := time.Now()
	c.Status = CompanyStatusSuspended
	c.SuspendedAt = &now
	c.UpdatedAt = now

	return nil
}

// Reactivate restores a suspended company
func (c *Company) Reactivate() error {
	if c.Status != CompanyStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only suspended companies can be reactivated")
	}

	c.Status = CompanyStatusActive
	c.SuspendedAt = nil
	c.Touch()

	return nil
}

// Cancel permanently closes the company account
func (c *Company) Cancel() error {
	if c.Status == CompanyStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Company is already cancelled")
	}

	now := time.Now()
	c.Status = CompanyStatusCancelled
	c.CancelledAt = &now
	c.UpdatedAt = now

	return nil
}

// IsActive reports whether the company may use the system
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}
