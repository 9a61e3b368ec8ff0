package finance

import (
	"context"
	"time"

	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForCompany finds a client by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Client, error)

	// FindByLead finds the client derived from a lead, if any
	FindByLead(ctx context.Context, companyID, leadID uuid.UUID) (*Client, error)

	// FindAllForCompany finds all clients for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// DeleteForCompany deletes a client scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForCompany finds an invoice by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by number for a company
	FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*Invoice, error)

	// FindAllForCompany finds all invoices for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus finds invoices by status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindPaidByProject finds paid invoices billed against a project
	FindPaidByProject(ctx context.Context, companyID, projectID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice together with its lines
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForCompany deletes an invoice scoped to a company.
	// Callers must check CanBeDeleted first.
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error

	// CountForCompany counts invoices for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if an invoice number exists for a company
	ExistsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error)

	// NextInvoiceNumber generates the next invoice number for a company
	NextInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// NextRecurringInvoiceNumber generates the next number in the dedicated
	// recurring series for a company
	NextRecurringInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error)
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForCompany finds an expense by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Expense, error)

	// FindAllForCompany finds all expenses for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// FindByProject finds expenses attributed to a project
	FindByProject(ctx context.Context, companyID, projectID uuid.UUID) ([]Expense, error)

	// FindByStatus finds expenses by status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status ExpenseStatus, filter shared.Filter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// DeleteForCompany deletes an expense scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// RecurringInvoiceRepository defines the interface for recurring invoice
// template persistence
type RecurringInvoiceRepository interface {
	// FindByIDForCompany finds a template by ID scoped to a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*RecurringInvoice, error)

	// FindAllForCompany finds all templates for a company with filtering
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]RecurringInvoice, error)

	// FindDue finds all active templates, across companies, whose next
	// generation date has passed. Used by the batch generator.
	FindDue(ctx context.Context, now time.Time) ([]RecurringInvoice, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *RecurringInvoice) error

	// DeleteForCompany deletes a template scoped to a company
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
