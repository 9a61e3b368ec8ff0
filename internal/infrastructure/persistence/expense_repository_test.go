package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpense(t *testing.T, companyID uuid.UUID, description string, minorUnits int64) *finance.Expense {
	t.Helper()
	expense, err := finance.NewExpense(companyID, description, finance.ExpenseCategorySoftware, usd(t, minorUnits), time.Now())
	require.NoError(t, err)
	return expense
}

func TestGormExpenseRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("round trips an expense", func(t *testing.T) {
		expense := newTestExpense(t, companyID, "IDE licences", 49900)
		require.NoError(t, expense.AttachReceipt("receipts/2026/ide-licences.pdf"))

		require.NoError(t, repo.Save(ctx, expense))

		found, err := repo.FindByIDForCompany(ctx, companyID, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "IDE licences", found.Description)
		assert.Equal(t, finance.ExpenseCategorySoftware, found.Category)
		assert.Equal(t, int64(49900), found.Amount.MinorUnits())
		assert.Equal(t, finance.ExpenseStatusPending, found.Status)
		assert.Equal(t, "receipts/2026/ide-licences.pdf", found.ReceiptKey)
	})

	t.Run("persists approval state", func(t *testing.T) {
		expense := newTestExpense(t, companyID, "Team offsite", 120000)
		require.NoError(t, expense.Approve())
		require.NoError(t, repo.Save(ctx, expense))

		found, err := repo.FindByIDForCompany(ctx, companyID, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.ExpenseStatusApproved, found.Status)
		assert.NotNil(t, found.ApprovedAt)
	})

	t.Run("other company cannot see the expense", func(t *testing.T) {
		expense := newTestExpense(t, companyID, "Hidden", 100)
		require.NoError(t, repo.Save(ctx, expense))

		_, err := repo.FindByIDForCompany(ctx, uuid.New(), expense.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormExpenseRepository_FindByProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	projectID := uuid.New()

	attributed := newTestExpense(t, companyID, "Cloud bill", 30000)
	require.NoError(t, attributed.LinkProject(projectID))
	require.NoError(t, repo.Save(ctx, attributed))

	unattributed := newTestExpense(t, companyID, "Office rent", 250000)
	require.NoError(t, repo.Save(ctx, unattributed))

	expenses, err := repo.FindByProject(ctx, companyID, projectID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Cloud bill", expenses[0].Description)
}

func TestGormExpenseRepository_FindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	pending := newTestExpense(t, companyID, "Pending expense", 1000)
	require.NoError(t, repo.Save(ctx, pending))

	approved := newTestExpense(t, companyID, "Approved expense", 2000)
	require.NoError(t, approved.Approve())
	require.NoError(t, repo.Save(ctx, approved))

	expenses, err := repo.FindByStatus(ctx, companyID, finance.ExpenseStatusApproved, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Approved expense", expenses[0].Description)
}
