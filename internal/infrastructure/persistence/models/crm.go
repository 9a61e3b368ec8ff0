package models

import (
	"time"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadModel is the persistence model for the Lead aggregate.
type LeadModel struct {
	TenantAggregateModel
	Name        string         `gorm:"type:varchar(200);not null"`
	Email       string         `gorm:"type:varchar(200);index"`
	Phone       string         `gorm:"type:varchar(50)"`
	CompanyName string         `gorm:"type:varchar(200)"`
	Status      crm.LeadStatus `gorm:"type:varchar(20);not null;default:'NEW';index"`
	Source      string         `gorm:"type:varchar(100)"`
	Notes       string         `gorm:"type:text"`
	ConvertedAt *time.Time
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		TenantAggregateRoot: m.tenantRoot(),
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		CompanyName:         m.CompanyName,
		Status:              m.Status,
		Source:              m.Source,
		Notes:               m.Notes,
		ConvertedAt:         m.ConvertedAt,
	}
}

// LeadModelFromDomain converts a domain Lead to its persistence model
func LeadModelFromDomain(lead *crm.Lead) *LeadModel {
	m := &LeadModel{
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		CompanyName: lead.CompanyName,
		Status:      lead.Status,
		Source:      lead.Source,
		Notes:       lead.Notes,
		ConvertedAt: lead.ConvertedAt,
	}
	m.FromDomainTenantAggregateRoot(lead.TenantAggregateRoot)
	return m
}

// EstimateModel is the persistence model for the Estimate aggregate.
// Monetary amounts are stored as integer minor units next to the currency code.
type EstimateModel struct {
	TenantAggregateModel
	Number        string             `gorm:"type:varchar(30);not null;uniqueIndex:idx_estimates_company_number,priority:2"`
	LeadID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	LeadName      string             `gorm:"type:varchar(200)"`
	LeadEmail     string             `gorm:"type:varchar(200)"`
	Status        crm.EstimateStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Currency      string             `gorm:"type:varchar(3);not null"`
	SubtotalMinor int64              `gorm:"type:bigint;not null;default:0"`
	TotalVATMinor int64              `gorm:"type:bigint;not null;default:0"`
	TotalMinor    int64              `gorm:"type:bigint;not null;default:0"`
	ValidityDays  int                `gorm:"not null;default:30"`
	ExpiresAt     *time.Time
	SentAt        *time.Time
	AcceptedAt    *time.Time
	RejectedAt    *time.Time
	Lines         []EstimateLineModel `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (EstimateModel) TableName() string {
	return "estimates"
}

// ToDomain converts the persistence model to a domain Estimate
func (m *EstimateModel) ToDomain() (*crm.Estimate, error) {
	currency := valueobject.Currency(m.Currency)
	subtotal, err := valueobject.NewMoneyFromMinorUnits(m.SubtotalMinor, currency)
	if err != nil {
		return nil, err
	}
	totalVAT, err := valueobject.NewMoneyFromMinorUnits(m.TotalVATMinor, currency)
	if err != nil {
		return nil, err
	}
	total, err := valueobject.NewMoneyFromMinorUnits(m.TotalMinor, currency)
	if err != nil {
		return nil, err
	}

	lines := make([]crm.EstimateLine, len(m.Lines))
	for i, lm := range m.Lines {
		line, err := lm.ToDomain()
		if err != nil {
			return nil, err
		}
		lines[i] = *line
	}

	return &crm.Estimate{
		TenantAggregateRoot: m.tenantRoot(),
		Number:              m.Number,
		LeadID:              m.LeadID,
		LeadName:            m.LeadName,
		LeadEmail:           m.LeadEmail,
		Status:              m.Status,
		Currency:            currency,
		Lines:               lines,
		Subtotal:            subtotal,
		TotalVAT:            totalVAT,
		Total:               total,
		ValidityDays:        m.ValidityDays,
		ExpiresAt:           m.ExpiresAt,
		SentAt:              m.SentAt,
		AcceptedAt:          m.AcceptedAt,
		RejectedAt:          m.RejectedAt,
	}, nil
}

// EstimateModelFromDomain converts a domain Estimate to its persistence model
func EstimateModelFromDomain(estimate *crm.Estimate) *EstimateModel {
	m := &EstimateModel{
		Number:        estimate.Number,
		LeadID:        estimate.LeadID,
		LeadName:      estimate.LeadName,
		LeadEmail:     estimate.LeadEmail,
		Status:        estimate.Status,
		Currency:      estimate.Currency.String(),
		SubtotalMinor: estimate.Subtotal.MinorUnits(),
		TotalVATMinor: estimate.TotalVAT.MinorUnits(),
		TotalMinor:    estimate.Total.MinorUnits(),
		ValidityDays:  estimate.ValidityDays,
		ExpiresAt:     estimate.ExpiresAt,
		SentAt:        estimate.SentAt,
		AcceptedAt:    estimate.AcceptedAt,
		RejectedAt:    estimate.RejectedAt,
	}
	m.FromDomainTenantAggregateRoot(estimate.TenantAggregateRoot)
	m.Lines = make([]EstimateLineModel, len(estimate.Lines))
	for i, line := range estimate.Lines {
		m.Lines[i] = *EstimateLineModelFromDomain(&line, estimate.Currency)
	}
	return m
}

// EstimateLineModel is the persistence model for an estimate line.
type EstimateLineModel struct {
	BaseModel
	EstimateID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description    string          `gorm:"type:varchar(500);not null"`
	Quantity       int64           `gorm:"type:bigint;not null"`
	UnitPriceMinor int64           `gorm:"type:bigint;not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	VATRate        decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (EstimateLineModel) TableName() string {
	return "estimate_lines"
}

// ToDomain converts the persistence model to a domain EstimateLine
func (m *EstimateLineModel) ToDomain() (*crm.EstimateLine, error) {
	unitPrice, err := valueobject.NewMoneyFromMinorUnits(m.UnitPriceMinor, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &crm.EstimateLine{
		ID:          m.ID,
		EstimateID:  m.EstimateID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   unitPrice,
		VATRate:     m.VATRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// EstimateLineModelFromDomain converts a domain EstimateLine to its persistence model
func EstimateLineModelFromDomain(line *crm.EstimateLine, currency valueobject.Currency) *EstimateLineModel {
	return &EstimateLineModel{
		BaseModel: BaseModel{
			ID:        line.ID,
			CreatedAt: line.CreatedAt,
			UpdatedAt: line.UpdatedAt,
		},
		EstimateID:     line.EstimateID,
		Description:    line.Description,
		Quantity:       line.Quantity,
		UnitPriceMinor: line.UnitPrice.MinorUnits(),
		Currency:       currency.String(),
		VATRate:        line.VATRate,
	}
}
