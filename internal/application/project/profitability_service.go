package project

import (
	"context"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/project"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProfitabilityService computes per-project financials from paid invoices,
// logged time and recognized expenses
type ProfitabilityService struct {
	projectRepo project.ProjectRepository
	invoiceRepo finance.InvoiceRepository
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewProfitabilityService creates a new ProfitabilityService
func NewProfitabilityService(
	projectRepo project.ProjectRepository,
	invoiceRepo finance.InvoiceRepository,
	expenseRepo finance.ExpenseRepository,
	logger *zap.Logger,
) *ProfitabilityService {
	return &ProfitabilityService{
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// GetProfitability reports revenue, costs, profit and margin for one project.
// Revenue counts paid invoices only. Costs are logged time at the project's
// hourly rate plus approved and paid expenses; pending or rejected expenses
// are ignored. Profit may be negative. Margin is a percentage with two
// decimal places, zero when there is no revenue.
func (s *ProfitabilityService) GetProfitability(ctx context.Context, companyID, projectID uuid.UUID) (*ProfitabilityResponse, error) {
	proj, err := s.projectRepo.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.collectRevenue(ctx, companyID, proj)
	if err != nil {
		return nil, err
	}

	timeLogCost, err := proj.TimeLogCost()
	if err != nil {
		return nil, err
	}

	expenseCost, err := s.collectExpenseCost(ctx, companyID, proj)
	if err != nil {
		return nil, err
	}

	costs, err := timeLogCost.Add(expenseCost)
	if err != nil {
		return nil, err
	}

	profit, err := revenue.SignedSubtract(costs)
	if err != nil {
		return nil, err
	}

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Decimal().
			Div(revenue.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return &ProfitabilityResponse{
		ProjectID:   proj.ID,
		Revenue:     revenue.String(),
		TimeLogCost: timeLogCost.String(),
		ExpenseCost: expenseCost.String(),
		Costs:       costs.String(),
		Profit:      profit.String(),
		Margin:      margin.StringFixed(2),
	}, nil
}

func (s *ProfitabilityService) collectRevenue(ctx context.Context, companyID uuid.UUID, proj *project.Project) (valueobject.Money, error) {
	invoices, err := s.invoiceRepo.FindPaidByProject(ctx, companyID, proj.ID)
	if err != nil {
		return valueobject.Money{}, err
	}

	revenue := valueobject.Zero(proj.Budget.Currency())
	for i := range invoices {
		revenue, err = revenue.Add(invoices[i].Total)
		if err != nil {
			return valueobject.Money{}, err
		}
	}
	return revenue, nil
}

func (s *ProfitabilityService) collectExpenseCost(ctx context.Context, companyID uuid.UUID, proj *project.Project) (valueobject.Money, error) {
	expenses, err := s.expenseRepo.FindByProject(ctx, companyID, proj.ID)
	if err != nil {
		return valueobject.Money{}, err
	}

	cost := valueobject.Zero(proj.Budget.Currency())
	for i := range expenses {
		if !expenses[i].Status.CountsAsCost() {
			continue
		}
		cost, err = cost.Add(expenses[i].Amount)
		if err != nil {
			return valueobject.Money{}, err
		}
	}
	return cost, nil
}
