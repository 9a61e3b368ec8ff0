package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizkit/backend/internal/domain/crm"
	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/project"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultHourlyRateMinorUnits is the placeholder hourly rate assigned to
// projects created from an estimate, in minor units (100.00)
const DefaultHourlyRateMinorUnits = 10000

// ConversionService atomically turns one accepted estimate into a project
// and an invoice, and marks the source lead as won. All writes happen in a
// single transaction; any failure rolls the whole conversion back.
type ConversionService struct {
	estimateRepo crm.EstimateRepository
	leadRepo     crm.LeadRepository
	projectRepo  project.ProjectRepository
	clientRepo   finance.ClientRepository
	invoiceRepo  finance.InvoiceRepository
	txManager    shared.TxManager
	logger       *zap.Logger
}

// NewConversionService creates a new ConversionService
func NewConversionService(
	estimateRepo crm.EstimateRepository,
	leadRepo crm.LeadRepository,
	projectRepo project.ProjectRepository,
	clientRepo finance.ClientRepository,
	invoiceRepo finance.InvoiceRepository,
	txManager shared.TxManager,
	logger *zap.Logger,
) *ConversionService {
	return &ConversionService{
		estimateRepo: estimateRepo,
		leadRepo:     leadRepo,
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Convert runs the full estimate conversion for one company.
// depositPercentage > 0 produces a deposit invoice for that share of the
// estimate total, numbered with a -DEPOSIT suffix; 0 produces a full invoice.
func (s *ConversionService) Convert(ctx context.Context, companyID, estimateID uuid.UUID, depositPercentage int) (*ConversionResponse, error) {
	if depositPercentage < 0 || depositPercentage > 100 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deposit percentage must be between 0 and 100")
	}

	var response *ConversionResponse

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		estimate, err := s.estimateRepo.FindByIDForCompany(txCtx, companyID, estimateID)
		if err != nil {
			return err
		}
		if !estimate.IsAccepted() {
			return shared.NewDomainError("INVALID_STATE", "Only accepted estimates can be converted")
		}

		lead, err := s.leadRepo.FindByIDForCompany(txCtx, companyID, estimate.LeadID)
		if err != nil {
			return err
		}

		proj, err := s.createProject(txCtx, companyID, estimate)
		if err != nil {
			return err
		}

		client, err := s.resolveClient(txCtx, companyID, lead)
		if err != nil {
			return err
		}

		invoice, err := s.createInvoice(txCtx, companyID, estimate, client, proj, depositPercentage)
		if err != nil {
			return err
		}

		lead.MarkAsWon()

		if err := s.projectRepo.Save(txCtx, proj); err != nil {
			return err
		}
		if err := s.clientRepo.Save(txCtx, client); err != nil {
			return err
		}
		if err := s.invoiceRepo.Save(txCtx, invoice); err != nil {
			return err
		}
		if err := s.leadRepo.Save(txCtx, lead); err != nil {
			return err
		}

		response = &ConversionResponse{
			Project: ToProjectSummary(proj),
			Invoice: ToInvoiceSummary(invoice),
			Lead:    ToLeadResponse(lead),
		}

		return nil
	})
	if err != nil {
		// Domain-rule violations surface precisely; everything else is
		// wrapped so infrastructure details do not leak to the caller
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("Estimate conversion failed",
			zap.String("estimate_id", estimateID.String()),
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, shared.ErrConversionFailed
	}

	s.logger.Info("Estimate converted",
		zap.String("estimate_id", estimateID.String()),
		zap.String("project_code", response.Project.Code),
		zap.String("invoice_number", response.Invoice.Number))

	return response, nil
}

func (s *ConversionService) createProject(ctx context.Context, companyID uuid.UUID, estimate *crm.Estimate) (*project.Project, error) {
	code, err := s.projectRepo.NextProjectCode(ctx, companyID)
	if err != nil {
		return nil, err
	}

	hourlyRate, err := valueobject.NewMoneyFromMinorUnits(DefaultHourlyRateMinorUnits, estimate.Currency)
	if err != nil {
		return nil, err
	}

	proj, err := project.NewProject(
		companyID,
		estimate.LeadName+" - Project",
		code,
		estimate.Total,
		hourlyRate,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	proj.LinkEstimate(estimate.ID)
	if err := proj.Activate(); err != nil {
		return nil, err
	}

	return proj, nil
}

func (s *ConversionService) resolveClient(ctx context.Context, companyID uuid.UUID, lead *crm.Lead) (*finance.Client, error) {
	client, err := s.clientRepo.FindByLead(ctx, companyID, lead.ID)
	if err == nil && client != nil {
		return client, nil
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return finance.NewClientFromLead(companyID, lead.ID, lead.Name, lead.Email)
}

func (s *ConversionService) createInvoice(ctx context.Context, companyID uuid.UUID, estimate *crm.Estimate, client *finance.Client, proj *project.Project, depositPercentage int) (*finance.Invoice, error) {
	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	amount := estimate.Total
	description := fmt.Sprintf("Work per estimate %s", estimate.Number)
	if depositPercentage > 0 {
		// Integer basis-point math so the stored amount never passes
		// through floating point
		amount, err = estimate.Total.MultiplyBasisPoints(int64(depositPercentage) * 100)
		if err != nil {
			return nil, err
		}
		number += "-DEPOSIT"
		description = fmt.Sprintf("Deposit (%d%%) for estimate %s", depositPercentage, estimate.Number)
	}

	invoice, err := finance.NewInvoice(companyID, number, client.ID, estimate.Currency)
	if err != nil {
		return nil, err
	}
	invoice.LinkProject(proj.ID)

	if _, err := invoice.AddLine(description, 1, amount, decimal.Zero); err != nil {
		return nil, err
	}

	return invoice, nil
}
