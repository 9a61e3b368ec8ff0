package models

import (
	"time"

	"github.com/bizkit/backend/internal/domain/project"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for the Project aggregate.
// Budget and hourly rate share one currency, stored once.
type ProjectModel struct {
	TenantAggregateModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Code            string                `gorm:"type:varchar(30);not null;uniqueIndex:idx_projects_company_code,priority:2"`
	Status          project.ProjectStatus `gorm:"type:varchar(20);not null;default:'PLANNING';index"`
	BudgetMinor     int64                 `gorm:"type:bigint;not null;default:0"`
	HourlyRateMinor int64                 `gorm:"type:bigint;not null;default:0"`
	Currency        string                `gorm:"type:varchar(3);not null"`
	StartDate       time.Time             `gorm:"not null"`
	EndDate         *time.Time
	EstimateID      *uuid.UUID     `gorm:"type:uuid;index"`
	Tasks           []TaskModel    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	TimeLogs        []TimeLogModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() (*project.Project, error) {
	currency := valueobject.Currency(m.Currency)
	budget, err := valueobject.NewMoneyFromMinorUnits(m.BudgetMinor, currency)
	if err != nil {
		return nil, err
	}
	hourlyRate, err := valueobject.NewMoneyFromMinorUnits(m.HourlyRateMinor, currency)
	if err != nil {
		return nil, err
	}

	tasks := make([]project.Task, len(m.Tasks))
	for i, tm := range m.Tasks {
		tasks[i] = *tm.ToDomain()
	}
	timeLogs := make([]project.TimeLog, len(m.TimeLogs))
	for i, tl := range m.TimeLogs {
		timeLogs[i] = *tl.ToDomain()
	}

	return &project.Project{
		TenantAggregateRoot: m.tenantRoot(),
		Name:                m.Name,
		Code:                m.Code,
		Status:              m.Status,
		Budget:              budget,
		HourlyRate:          hourlyRate,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		EstimateID:          m.EstimateID,
		Tasks:               tasks,
		TimeLogs:            timeLogs,
	}, nil
}

// ProjectModelFromDomain converts a domain Project to its persistence model
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{
		Name:            p.Name,
		Code:            p.Code,
		Status:          p.Status,
		BudgetMinor:     p.Budget.MinorUnits(),
		HourlyRateMinor: p.HourlyRate.MinorUnits(),
		Currency:        p.Budget.Currency().String(),
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		EstimateID:      p.EstimateID,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Tasks = make([]TaskModel, len(p.Tasks))
	for i, task := range p.Tasks {
		m.Tasks[i] = *TaskModelFromDomain(&task)
	}
	m.TimeLogs = make([]TimeLogModel, len(p.TimeLogs))
	for i, tl := range p.TimeLogs {
		m.TimeLogs[i] = *TimeLogModelFromDomain(&tl)
	}
	return m
}

// TaskModel is the persistence model for a project task.
type TaskModel struct {
	BaseModel
	ProjectID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	ParentTaskID *uuid.UUID         `gorm:"type:uuid;index"`
	Title        string             `gorm:"type:varchar(300);not null"`
	Status       project.TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'"`
	Priority     int                `gorm:"not null;default:3"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task
func (m *TaskModel) ToDomain() *project.Task {
	return &project.Task{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		ParentTaskID: m.ParentTaskID,
		Title:        m.Title,
		Status:       m.Status,
		Priority:     m.Priority,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TaskModelFromDomain converts a domain Task to its persistence model
func TaskModelFromDomain(t *project.Task) *TaskModel {
	return &TaskModel{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		ProjectID:    t.ProjectID,
		ParentTaskID: t.ParentTaskID,
		Title:        t.Title,
		Status:       t.Status,
		Priority:     t.Priority,
	}
}

// TimeLogModel is the persistence model for a time log entry.
type TimeLogModel struct {
	BaseModel
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500)"`
	Hours       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LoggedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TimeLogModel) TableName() string {
	return "time_logs"
}

// ToDomain converts the persistence model to a domain TimeLog
func (m *TimeLogModel) ToDomain() *project.TimeLog {
	return &project.TimeLog{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Hours:       m.Hours,
		LoggedAt:    m.LoggedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TimeLogModelFromDomain converts a domain TimeLog to its persistence model
func TimeLogModelFromDomain(tl *project.TimeLog) *TimeLogModel {
	return &TimeLogModel{
		BaseModel: BaseModel{
			ID:        tl.ID,
			CreatedAt: tl.CreatedAt,
			UpdatedAt: tl.UpdatedAt,
		},
		ProjectID:   tl.ProjectID,
		Description: tl.Description,
		Hours:       tl.Hours,
		LoggedAt:    tl.LoggedAt,
	}
}
