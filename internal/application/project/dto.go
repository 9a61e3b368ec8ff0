package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetAlertLevel classifies how far a project has eaten into its budget
type BudgetAlertLevel string

const (
	BudgetAlertOK       BudgetAlertLevel = "ok"
	BudgetAlertWarning  BudgetAlertLevel = "warning"
	BudgetAlertCritical BudgetAlertLevel = "critical"
)

// Budget alert thresholds in percent
const (
	warningThreshold  = 80
	criticalThreshold = 100
)

// ProfitabilityResponse reports a project's financial performance
type ProfitabilityResponse struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Revenue     string    `json:"revenue"`
	TimeLogCost string    `json:"time_log_cost"`
	ExpenseCost string    `json:"expense_cost"`
	Costs       string    `json:"costs"`
	Profit      string    `json:"profit"` // May be negative
	Margin      string    `json:"margin"` // Percent, two decimal places
}

// BudgetAlertResponse reports a project's budget consumption
type BudgetAlertResponse struct {
	ProjectID       uuid.UUID        `json:"project_id"`
	Budget          string           `json:"budget"`
	TimeLogCost     string           `json:"time_log_cost"`
	UsagePercentage decimal.Decimal  `json:"usage_percentage"`
	Level           BudgetAlertLevel `json:"level"`
}
