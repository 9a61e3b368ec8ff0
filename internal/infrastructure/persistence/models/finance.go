package models

import (
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	TenantAggregateModel
	Name   string     `gorm:"type:varchar(200);not null"`
	Email  string     `gorm:"type:varchar(200);index"`
	Phone  string     `gorm:"type:varchar(50)"`
	LeadID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *finance.Client {
	return &finance.Client{
		TenantAggregateRoot: m.tenantRoot(),
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		LeadID:              m.LeadID,
	}
}

// ClientModelFromDomain converts a domain Client to its persistence model
func ClientModelFromDomain(client *finance.Client) *ClientModel {
	m := &ClientModel{
		Name:   client.Name,
		Email:  client.Email,
		Phone:  client.Phone,
		LeadID: client.LeadID,
	}
	m.FromDomainTenantAggregateRoot(client.TenantAggregateRoot)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate.
// Monetary amounts are stored as integer minor units next to the currency code.
type InvoiceModel struct {
	TenantAggregateModel
	Number        string                `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoices_company_number,priority:2"`
	ClientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProjectID     *uuid.UUID            `gorm:"type:uuid;index"`
	Status        finance.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Currency      string                `gorm:"type:varchar(3);not null"`
	SubtotalMinor int64                 `gorm:"type:bigint;not null;default:0"`
	TotalVATMinor int64                 `gorm:"type:bigint;not null;default:0"`
	TotalMinor    int64                 `gorm:"type:bigint;not null;default:0"`
	IssuedAt      *time.Time
	PaidAt        *time.Time `gorm:"index"`
	DueDate       *time.Time
	IsRecurring   bool               `gorm:"not null;default:false"`
	Lines         []InvoiceLineModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() (*finance.Invoice, error) {
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

	lines := make([]finance.InvoiceLine, len(m.Lines))
	for i, lm := range m.Lines {
		line, err := lm.ToDomain()
		if err != nil {
			return nil, err
		}
		lines[i] = *line
	}

	return &finance.Invoice{
		TenantAggregateRoot: m.tenantRoot(),
		Number:              m.Number,
		ClientID:            m.ClientID,
		ProjectID:           m.ProjectID,
		Status:              m.Status,
		Currency:            currency,
		Lines:               lines,
		Subtotal:            subtotal,
		TotalVAT:            totalVAT,
		Total:               total,
		IssuedAt:            m.IssuedAt,
		PaidAt:              m.PaidAt,
		DueDate:             m.DueDate,
		IsRecurring:         m.IsRecurring,
	}, nil
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(invoice *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Number:        invoice.Number,
		ClientID:      invoice.ClientID,
		ProjectID:     invoice.ProjectID,
		Status:        invoice.Status,
		Currency:      invoice.Currency.String(),
		SubtotalMinor: invoice.Subtotal.MinorUnits(),
		TotalVATMinor: invoice.TotalVAT.MinorUnits(),
		TotalMinor:    invoice.Total.MinorUnits(),
		IssuedAt:      invoice.IssuedAt,
		PaidAt:        invoice.PaidAt,
		DueDate:       invoice.DueDate,
		IsRecurring:   invoice.IsRecurring,
	}
	m.FromDomainTenantAggregateRoot(invoice.TenantAggregateRoot)
	m.Lines = make([]InvoiceLineModel, len(invoice.Lines))
	for i, line := range invoice.Lines {
		m.Lines[i] = *InvoiceLineModelFromDomain(&line, invoice.Currency)
	}
	return m
}

// InvoiceLineModel is the persistence model for an invoice line.
type InvoiceLineModel struct {
	BaseModel
	InvoiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description    string          `gorm:"type:varchar(500);not null"`
	Quantity       int64           `gorm:"type:bigint;not null"`
	UnitPriceMinor int64           `gorm:"type:bigint;not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	VATRate        decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() (*finance.InvoiceLine, error) {
	unitPrice, err := valueobject.NewMoneyFromMinorUnits(m.UnitPriceMinor, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &finance.InvoiceLine{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   unitPrice,
		VATRate:     m.VATRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// InvoiceLineModelFromDomain converts a domain InvoiceLine to its persistence model
func InvoiceLineModelFromDomain(line *finance.InvoiceLine, currency valueobject.Currency) *InvoiceLineModel {
	return &InvoiceLineModel{
		BaseModel: BaseModel{
			ID:        line.ID,
			CreatedAt: line.CreatedAt,
			UpdatedAt: line.UpdatedAt,
		},
		InvoiceID:      line.InvoiceID,
		Description:    line.Description,
		Quantity:       line.Quantity,
		UnitPriceMinor: line.UnitPrice.MinorUnits(),
		Currency:       currency.String(),
		VATRate:        line.VATRate,
	}
}

// ExpenseModel is the persistence model for the Expense aggregate.
type ExpenseModel struct {
	TenantAggregateModel
	Description string                  `gorm:"type:varchar(500);not null"`
	Category    finance.ExpenseCategory `gorm:"type:varchar(20);not null"`
	AmountMinor int64                   `gorm:"type:bigint;not null"`
	Currency    string                  `gorm:"type:varchar(3);not null"`
	Status      finance.ExpenseStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ProjectID   *uuid.UUID              `gorm:"type:uuid;index"`
	ExpenseDate time.Time               `gorm:"not null"`
	ReceiptKey  string                  `gorm:"type:varchar(500)"`
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() (*finance.Expense, error) {
	amount, err := valueobject.NewMoneyFromMinorUnits(m.AmountMinor, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &finance.Expense{
		TenantAggregateRoot: m.tenantRoot(),
		Description:         m.Description,
		Category:            m.Category,
		Amount:              amount,
		Status:              m.Status,
		ProjectID:           m.ProjectID,
		ExpenseDate:         m.ExpenseDate,
		ReceiptKey:          m.ReceiptKey,
		ApprovedAt:          m.ApprovedAt,
		RejectedAt:          m.RejectedAt,
		PaidAt:              m.PaidAt,
	}, nil
}

// ExpenseModelFromDomain converts a domain Expense to its persistence model
func ExpenseModelFromDomain(expense *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		Description: expense.Description,
		Category:    expense.Category,
		AmountMinor: expense.Amount.MinorUnits(),
		Currency:    expense.Amount.Currency().String(),
		Status:      expense.Status,
		ProjectID:   expense.ProjectID,
		ExpenseDate: expense.ExpenseDate,
		ReceiptKey:  expense.ReceiptKey,
		ApprovedAt:  expense.ApprovedAt,
		RejectedAt:  expense.RejectedAt,
		PaidAt:      expense.PaidAt,
	}
	m.FromDomainTenantAggregateRoot(expense.TenantAggregateRoot)
	return m
}

// RecurringInvoiceModel is the persistence model for recurring invoice templates.
type RecurringInvoiceModel struct {
	TenantAggregateModel
	ClientID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	Description        string            `gorm:"type:varchar(500);not null"`
	AmountMinor        int64             `gorm:"type:bigint;not null"`
	Currency           string            `gorm:"type:varchar(3);not null"`
	Frequency          finance.Frequency `gorm:"type:varchar(20);not null"`
	DayOfMonth         int               `gorm:"not null;default:0"`
	DayOfWeek          int               `gorm:"not null;default:0"`
	Active             bool              `gorm:"not null;default:true;index"`
	StartDate          time.Time         `gorm:"not null"`
	EndDate            *time.Time
	LastGeneratedAt    *time.Time
	NextGenerationDate time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RecurringInvoiceModel) TableName() string {
	return "recurring_invoices"
}

// ToDomain converts the persistence model to a domain RecurringInvoice
func (m *RecurringInvoiceModel) ToDomain() (*finance.RecurringInvoice, error) {
	amount, err := valueobject.NewMoneyFromMinorUnits(m.AmountMinor, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &finance.RecurringInvoice{
		TenantAggregateRoot: m.tenantRoot(),
		ClientID:            m.ClientID,
		Description:         m.Description,
		Amount:              amount,
		Frequency:           m.Frequency,
		DayOfMonth:          m.DayOfMonth,
		DayOfWeek:           m.DayOfWeek,
		Active:              m.Active,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		LastGeneratedAt:     m.LastGeneratedAt,
		NextGenerationDate:  m.NextGenerationDate,
	}, nil
}

// RecurringInvoiceModelFromDomain converts a domain RecurringInvoice to its persistence model
func RecurringInvoiceModelFromDomain(template *finance.RecurringInvoice) *RecurringInvoiceModel {
	m := &RecurringInvoiceModel{
		ClientID:           template.ClientID,
		Description:        template.Description,
		AmountMinor:        template.Amount.MinorUnits(),
		Currency:           template.Amount.Currency().String(),
		Frequency:          template.Frequency,
		DayOfMonth:         template.DayOfMonth,
		DayOfWeek:          template.DayOfWeek,
		Active:             template.Active,
		StartDate:          template.StartDate,
		EndDate:            template.EndDate,
		LastGeneratedAt:    template.LastGeneratedAt,
		NextGenerationDate: template.NextGenerationDate,
	}
	m.FromDomainTenantAggregateRoot(template.TenantAggregateRoot)
	return m
}
