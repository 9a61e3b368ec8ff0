package models

import (
	"time"

	"github.com/google/uuid"
)

// NumberSequenceModel holds the per-company, per-year counters behind
// document numbers such as INV-2026-0001 and PROJ-2026-001. Each series
// keeps its own counter so gaps in one never affect another.
type NumberSequenceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sequences_company_series_year,priority:1"`
	Series    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_sequences_company_series_year,priority:2"`
	Year      int       `gorm:"not null;uniqueIndex:idx_sequences_company_series_year,priority:3"`
	Counter   int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
