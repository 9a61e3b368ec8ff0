package crm

import (
	"time"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/project"
	"github.com/google/uuid"
)

// ConvertEstimateRequest represents a request to convert an accepted estimate
type ConvertEstimateRequest struct {
	// DepositPercentage, when > 0, produces a deposit invoice for that
	// share of the estimate total instead of a full invoice
	DepositPercentage int `json:"depositPercentage" binding:"omitempty,min=0,max=100"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanyName string     `json:"company_name,omitempty"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	ConvertedAt *time.Time `json:"converted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToLeadResponse converts a lead to its response representation
func ToLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		CompanyName: l.CompanyName,
		Status:      l.Status.String(),
		Source:      l.Source,
		ConvertedAt: l.ConvertedAt,
		CreatedAt:   l.CreatedAt,
	}
}

// ProjectSummary represents a project in conversion responses
type ProjectSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	Budget     string    `json:"budget"`
	HourlyRate string    `json:"hourly_rate"`
	StartDate  time.Time `json:"start_date"`
}

// ToProjectSummary converts a project to its summary representation
func ToProjectSummary(p *project.Project) ProjectSummary {
	return ProjectSummary{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		Status:     p.Status.String(),
		Budget:     p.Budget.String(),
		HourlyRate: p.HourlyRate.String(),
		StartDate:  p.StartDate,
	}
}

// InvoiceSummary represents an invoice in conversion responses
type InvoiceSummary struct {
	ID       uuid.UUID `json:"id"`
	Number   string    `json:"number"`
	Status   string    `json:"status"`
	Total    string    `json:"total"`
	ClientID uuid.UUID `json:"client_id"`
}

// ToInvoiceSummary converts an invoice to its summary representation
func ToInvoiceSummary(i *finance.Invoice) InvoiceSummary {
	return InvoiceSummary{
		ID:       i.ID,
		Number:   i.Number,
		Status:   i.Status.String(),
		Total:    i.Total.String(),
		ClientID: i.ClientID,
	}
}

// ConversionResponse is the result of a successful estimate conversion
type ConversionResponse struct {
	Project ProjectSummary `json:"project"`
	Invoice InvoiceSummary `json:"invoice"`
	Lead    LeadResponse   `json:"lead"`
}
