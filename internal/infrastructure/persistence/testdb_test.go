package persistence

import (
	"testing"

	"github.com/bizkit/backend/internal/domain/identity"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/bizkit/backend/internal/domain/tenant"
	"github.com/bizkit/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// SQLite's loose type affinity accepts the PostgreSQL column types in
// the model tags, so the production models migrate unchanged.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.LeadModel{},
		&models.EstimateModel{},
		&models.EstimateLineModel{},
		&models.ProjectModel{},
		&models.TaskModel{},
		&models.TimeLogModel{},
		&models.ClientModel{},
		&models.InvoiceModel{},
		&models.InvoiceLineModel{},
		&models.ExpenseModel{},
		&models.RecurringInvoiceModel{},
		&models.NumberSequenceModel{},
		&identity.User{},
		&tenant.Company{},
	)
	require.NoError(t, err)

	return db
}

// usd builds a USD amount from minor units for test fixtures
func usd(t *testing.T, minorUnits int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromMinorUnits(minorUnits, valueobject.USD)
	require.NoError(t, err)
	return m
}
