package persistence

import (
	"fmt"
	"time"

	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document number series. Each company carries one counter per series
// and year, so numbers restart at 1 every January.
const (
	seriesEstimate         = "EST"
	seriesProject          = "PROJ"
	seriesInvoice          = "INV"
	seriesRecurringInvoice = "INV-REC"
)

// nextSeriesNumber atomically increments and returns the counter for one
// company, series and year. The UPDATE reads its own result via RETURNING,
// so two concurrent callers can never draw the same number even outside a
// transaction. The first call of a year races on the INSERT; the unique
// index turns the loser into a plain increment.
func nextSeriesNumber(db *gorm.DB, companyID uuid.UUID, series string, year int) (int64, error) {
	counter, found, err := incrementSeriesCounter(db, companyID, series, year)
	if err != nil {
		return 0, err
	}
	if found {
		return counter, nil
	}

	now := time.Now()
	seq := models.NumberSequenceModel{
		ID:        uuid.New(),
		CompanyID: companyID,
		Series:    series,
		Year:      year,
		Counter:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&seq).Error; err == nil {
		return 1, nil
	}

	// Lost the insert race, bump the row the winner created
	counter, found, err = incrementSeriesCounter(db, companyID, series, year)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, gorm.ErrRecordNotFound
	}
	return counter, nil
}

// incrementSeriesCounter bumps the counter row and returns the new value
// from the same statement. found is false when no row exists yet.
func incrementSeriesCounter(db *gorm.DB, companyID uuid.UUID, series string, year int) (int64, bool, error) {
	var seq models.NumberSequenceModel
	res := db.Model(&seq).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "counter"}}}).
		Where("company_id = ? AND series = ? AND year = ?", companyID, series, year).
		UpdateColumn("counter", gorm.Expr("counter + 1"))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return seq.Counter, true, nil
}

// formatSeriesNumber renders a document number such as INV-2026-0042
func formatSeriesNumber(series string, year int, counter int64, width int) string {
	return fmt.Sprintf("%s-%d-%0*d", series, year, width, counter)
}
