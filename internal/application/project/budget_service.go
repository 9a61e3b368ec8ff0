package project

import (
	"context"

	"github.com/bizkit/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetService evaluates budget consumption for projects
type BudgetService struct {
	projectRepo project.ProjectRepository
	logger      *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(projectRepo project.ProjectRepository, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// GetBudgetAlert reports how much of a project's budget the logged time has
// consumed. Usage at or above 80% is a warning, at or above 100% critical.
// A zero budget always reports zero usage.
func (s *BudgetService) GetBudgetAlert(ctx context.Context, companyID, projectID uuid.UUID) (*BudgetAlertResponse, error) {
	proj, err := s.projectRepo.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	cost, err := proj.TimeLogCost()
	if err != nil {
		return nil, err
	}

	usage := decimal.Zero
	if proj.Budget.IsPositive() {
		usage = cost.Decimal().
			Div(proj.Budget.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	level := alertLevel(usage)
	if level != BudgetAlertOK {
		s.logger.Warn("Project budget threshold reached",
			zap.String("project_code", proj.Code),
			zap.String("company_id", companyID.String()),
			zap.String("usage_percentage", usage.StringFixed(2)),
			zap.String("level", string(level)))
	}

	return &BudgetAlertResponse{
		ProjectID:       proj.ID,
		Budget:          proj.Budget.String(),
		TimeLogCost:     cost.String(),
		UsagePercentage: usage,
		Level:           level,
	}, nil
}

func alertLevel(usage decimal.Decimal) BudgetAlertLevel {
	switch {
	case usage.GreaterThanOrEqual(decimal.NewFromInt(criticalThreshold)):
		return BudgetAlertCritical
	case usage.GreaterThanOrEqual(decimal.NewFromInt(warningThreshold)):
		return BudgetAlertWarning
	default:
		return BudgetAlertOK
	}
}
