package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the per-company read model behind the dashboard.
// Monetary sums are in minor units of the company's invoicing currency.
type DashboardStats struct {
	ActiveLeads             int64  `json:"active_leads"`
	OpenProjects            int64  `json:"open_projects"`
	OutstandingInvoiceTotal int64  `json:"outstanding_invoice_total"`
	MonthlyRevenue          int64  `json:"monthly_revenue"`
	Currency                string `json:"currency"`
	GeneratedAt             time.Time `json:"generated_at"`
}

// DashboardRepository defines the read-side queries behind the dashboard
type DashboardRepository interface {
	// ActiveLeadCount counts leads that are neither won nor lost
	ActiveLeadCount(ctx context.Context, companyID uuid.UUID) (int64, error)

	// OpenProjectCount counts projects in planning, active or on-hold state
	OpenProjectCount(ctx context.Context, companyID uuid.UUID) (int64, error)

	// OutstandingInvoiceTotal sums finalized unpaid invoice totals in minor
	// units, together with the dominant invoicing currency
	OutstandingInvoiceTotal(ctx context.Context, companyID uuid.UUID) (int64, string, error)

	// RevenueSince sums paid invoice totals, in minor units, for invoices
	// paid at or after the given instant
	RevenueSince(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error)
}
