package finance

import (
	"context"
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecurringInvoiceService generates invoices from due recurring templates.
// Each template is processed in its own transaction so one bad template
// cannot block the rest of the batch.
type RecurringInvoiceService struct {
	templateRepo finance.RecurringInvoiceRepository
	invoiceRepo  finance.InvoiceRepository
	txManager    shared.TxManager
	logger       *zap.Logger
}

// NewRecurringInvoiceService creates a new RecurringInvoiceService
func NewRecurringInvoiceService(
	templateRepo finance.RecurringInvoiceRepository,
	invoiceRepo finance.InvoiceRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *RecurringInvoiceService {
	return &RecurringInvoiceService{
		templateRepo: templateRepo,
		invoiceRepo:  invoiceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GenerateDueInvoices scans all due templates and generates one invoice per
// template. Per-template failures are logged and skipped.
func (s *RecurringInvoiceService) GenerateDueInvoices(ctx context.Context) (*GenerationResult, error) {
	now := time.Now()

	due, err := s.templateRepo.FindDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{}
	for idx := range due {
		template := &due[idx]
		if err := s.generateOne(ctx, template, now); err != nil {
			result.Failed++
			s.logger.Error("Recurring invoice generation failed for template",
				zap.String("template_id", template.ID.String()),
				zap.String("company_id", template.CompanyID.String()),
				zap.Error(err))
			continue
		}
		result.Generated++
	}

	s.logger.Info("Recurring invoice batch finished",
		zap.Int("due", len(due)),
		zap.Int("generated", result.Generated),
		zap.Int("failed", result.Failed))

	return result, nil
}

// generateOne creates the invoice and advances the template schedule in a
// single transaction, so an interrupted run can never double-generate
func (s *RecurringInvoiceService) generateOne(ctx context.Context, template *finance.RecurringInvoice, now time.Time) error {
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		number, err := s.invoiceRepo.NextRecurringInvoiceNumber(txCtx, template.CompanyID)
		if err != nil {
			return err
		}

		invoice, err := finance.NewInvoice(template.CompanyID, number, template.ClientID, template.Amount.Currency())
		if err != nil {
			return err
		}
		invoice.IsRecurring = true

		// Amount and currency are copied verbatim from the template
		if _, err := invoice.AddLine(template.Description, 1, template.Amount, decimal.Zero); err != nil {
			return err
		}

		template.MarkGenerated(now)

		if err := s.invoiceRepo.Save(txCtx, invoice); err != nil {
			return err
		}
		return s.templateRepo.Save(txCtx, template)
	})
}
