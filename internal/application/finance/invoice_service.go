package finance

import (
	"context"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo finance.InvoiceRepository
	clientRepo  finance.ClientRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo finance.InvoiceRepository, clientRepo finance.ClientRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// Create creates a new draft invoice
func (s *InvoiceService) Create(ctx context.Context, companyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.clientRepo.FindByIDForCompany(ctx, companyID, req.ClientID); err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	currency := valueobject.Currency(req.Currency)
	invoice, err := finance.NewInvoice(companyID, number, req.ClientID, currency)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		unitPrice, err := valueobject.NewMoneyFromMinorUnits(line.UnitPriceMinor, currency)
		if err != nil {
			return nil, err
		}
		if _, err := invoice.AddLine(line.Description, line.Quantity, unitPrice, line.VATRate); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices for a company
func (s *InvoiceService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for idx := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[idx]))
	}
	return responses, nil
}

// Finalize transitions a draft invoice to SENT
func (s *InvoiceService) Finalize(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Finalize(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice finalized",
		zap.String("invoice_number", invoice.Number),
		zap.String("company_id", companyID.String()))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// MarkPaid transitions a sent invoice to PAID
func (s *InvoiceService) MarkPaid(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes a draft invoice. Finalized invoices can never be deleted.
func (s *InvoiceService) Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}

	if !invoice.CanBeDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}

	return s.invoiceRepo.DeleteForCompany(ctx, companyID, invoiceID)
}
