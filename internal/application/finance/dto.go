package finance

import (
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	ClientID uuid.UUID                `json:"client_id" binding:"required"`
	Currency string                   `json:"currency" binding:"required,len=3"`
	Lines    []CreateInvoiceLineInput `json:"lines"`
}

// CreateInvoiceLineInput represents a line in the create invoice request
type CreateInvoiceLineInput struct {
	Description    string          `json:"description" binding:"required,min=1,max=500"`
	Quantity       int64           `json:"quantity" binding:"required,min=1"`
	UnitPriceMinor int64           `json:"unit_price_minor" binding:"required,min=0"`
	VATRate        decimal.Decimal `json:"vat_rate"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	VATRate     string    `json:"vat_rate"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	Number    string                `json:"number"`
	ClientID  uuid.UUID             `json:"client_id"`
	ProjectID *uuid.UUID            `json:"project_id,omitempty"`
	Status    string                `json:"status"`
	Currency  string                `json:"currency"`
	Subtotal  string                `json:"subtotal"`
	TotalVAT  string                `json:"total_vat"`
	Total     string                `json:"total"`
	Lines     []InvoiceLineResponse `json:"lines"`
	IssuedAt  *time.Time            `json:"issued_at,omitempty"`
	PaidAt    *time.Time            `json:"paid_at,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts an invoice to its response representation
func ToInvoiceResponse(i *finance.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(i.Lines))
	for idx := range i.Lines {
		line := &i.Lines[idx]
		lines = append(lines, InvoiceLineResponse{
			ID:          line.ID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.String(),
			VATRate:     line.VATRate.String(),
		})
	}

	return InvoiceResponse{
		ID:        i.ID,
		Number:    i.Number,
		ClientID:  i.ClientID,
		ProjectID: i.ProjectID,
		Status:    i.Status.String(),
		Currency:  i.Currency.String(),
		Subtotal:  i.Subtotal.String(),
		TotalVAT:  i.TotalVAT.String(),
		Total:     i.Total.String(),
		Lines:     lines,
		IssuedAt:  i.IssuedAt,
		PaidAt:    i.PaidAt,
		CreatedAt: i.CreatedAt,
	}
}

// GenerationResult reports the outcome of one recurring invoice batch run
type GenerationResult struct {
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Description string     `json:"description" binding:"required,min=1,max=500"`
	Category    string     `json:"category" binding:"required"`
	AmountMinor int64      `json:"amount_minor" binding:"required,min=1"`
	Currency    string     `json:"currency" binding:"required,len=3"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	ExpenseDate time.Time  `json:"expense_date"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	ExpenseDate time.Time  `json:"expense_date"`
	HasReceipt  bool       `json:"has_receipt"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToExpenseResponse converts an expense to its response representation
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category.String(),
		Amount:      e.Amount.String(),
		Status:      e.Status.String(),
		ProjectID:   e.ProjectID,
		ExpenseDate: e.ExpenseDate,
		HasReceipt:  e.ReceiptKey != "",
		ApprovedAt:  e.ApprovedAt,
		RejectedAt:  e.RejectedAt,
		PaidAt:      e.PaidAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ReceiptUploadRequest represents a request for a presigned receipt upload URL
type ReceiptUploadRequest struct {
	Filename    string `json:"filename" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ReceiptURLResponse carries a presigned URL for a receipt object
type ReceiptURLResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
