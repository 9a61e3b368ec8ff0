package finance

import (
	"context"
	"testing"
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID) ([]finance.Expense, error) {
	args := m.Called(ctx, companyID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status finance.ExpenseStatus, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, companyID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockReceiptStore is a mock implementation of ReceiptStore
type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockReceiptStore) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func newPendingExpense(t *testing.T, companyID uuid.UUID) *finance.Expense {
	amount, err := valueobject.NewMoneyFromMinorUnits(12500, valueobject.USD)
	require.NoError(t, err)
	expense, err := finance.NewExpense(companyID, "Conference travel", finance.ExpenseCategoryTravel, amount, time.Now())
	require.NoError(t, err)
	return expense
}

func TestExpenseService_Create(t *testing.T) {
	companyID := uuid.New()

	t.Run("records a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())

		expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)

		projectID := uuid.New()
		resp, err := service.Create(context.Background(), companyID, CreateExpenseRequest{
			Description: "IDE licences",
			Category:    "SOFTWARE",
			AmountMinor: 49900,
			Currency:    "USD",
			ProjectID:   &projectID,
		})
		require.NoError(t, err)

		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "499.00 USD", resp.Amount)
		assert.Equal(t, &projectID, resp.ProjectID)
		assert.False(t, resp.HasReceipt)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())

		_, err := service.Create(context.Background(), companyID, CreateExpenseRequest{
			Description: "Misc",
			Category:    "GROCERIES",
			AmountMinor: 1000,
			Currency:    "USD",
		})
		require.Error(t, err)
		expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_List(t *testing.T) {
	companyID := uuid.New()

	t.Run("filters by status", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByStatus", mock.Anything, companyID, finance.ExpenseStatusPending, mock.Anything).
			Return([]finance.Expense{*expense}, nil)

		resp, err := service.List(context.Background(), companyID, "pending", shared.Filter{})
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "PENDING", resp[0].Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())

		_, err := service.List(context.Background(), companyID, "ARCHIVED", shared.Filter{})
		require.Error(t, err)
	})

	t.Run("lists all without a status", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())

		expenseRepo.On("FindAllForCompany", mock.Anything, companyID, mock.Anything).
			Return([]finance.Expense{}, nil)

		resp, err := service.List(context.Background(), companyID, "", shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}

func TestExpenseService_Transitions(t *testing.T) {
	companyID := uuid.New()

	t.Run("approves a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		resp, err := service.Approve(context.Background(), companyID, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
	})

	t.Run("refuses to pay a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		_, err := service.MarkPaid(context.Background(), companyID, expense.ID)
		require.Error(t, err)
		expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		resp, err := service.Reject(context.Background(), companyID, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
	})
}

func TestExpenseService_ReceiptUploadURL(t *testing.T) {
	companyID := uuid.New()

	t.Run("issues a presigned URL and attaches the key", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		receipts := new(MockReceiptStore)
		service := NewExpenseService(expenseRepo, receipts, zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expectedKey := ReceiptObjectKey(companyID, expense.ID, "boarding-pass.pdf")
		expiresAt := time.Now().Add(receiptURLExpiry)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		receipts.On("GenerateUploadURL", mock.Anything, expectedKey, "application/pdf", receiptURLExpiry).
			Return("https://bucket.test/put/"+expectedKey, expiresAt, nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		resp, err := service.ReceiptUploadURL(context.Background(), companyID, expense.ID, ReceiptUploadRequest{
			Filename:    "boarding-pass.pdf",
			ContentType: "application/pdf",
		})
		require.NoError(t, err)

		assert.Equal(t, expectedKey, resp.Key)
		assert.Contains(t, resp.URL, expectedKey)
		assert.Equal(t, expectedKey, expense.ReceiptKey)
		expenseRepo.AssertExpectations(t)
	})

	t.Run("strips directory components from the filename", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		receipts := new(MockReceiptStore)
		service := NewExpenseService(expenseRepo, receipts, zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expectedKey := ReceiptObjectKey(companyID, expense.ID, "receipt.png")

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		receipts.On("GenerateUploadURL", mock.Anything, expectedKey, "image/png", receiptURLExpiry).
			Return("https://bucket.test/put/"+expectedKey, time.Now().Add(time.Minute), nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		_, err := service.ReceiptUploadURL(context.Background(), companyID, expense.ID, ReceiptUploadRequest{
			Filename:    "../../etc/receipt.png",
			ContentType: "image/png",
		})
		require.NoError(t, err)
	})

	t.Run("rejects a filename with no base name", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		_, err := service.ReceiptUploadURL(context.Background(), companyID, expense.ID, ReceiptUploadRequest{
			Filename:    "..",
			ContentType: "application/pdf",
		})
		require.Error(t, err)
		expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestExpenseService_ReceiptDownloadURL(t *testing.T) {
	companyID := uuid.New()

	t.Run("presigns the stored receipt key", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		receipts := new(MockReceiptStore)
		service := NewExpenseService(expenseRepo, receipts, zap.NewNop())
		expense := newPendingExpense(t, companyID)
		require.NoError(t, expense.AttachReceipt("receipts/2026/taxi.pdf"))

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		receipts.On("GenerateDownloadURL", mock.Anything, "receipts/2026/taxi.pdf", receiptURLExpiry).
			Return("https://bucket.test/get/receipts/2026/taxi.pdf", time.Now().Add(time.Minute), nil)

		resp, err := service.ReceiptDownloadURL(context.Background(), companyID, expense.ID)
		require.NoError(t, err)
		assert.Contains(t, resp.URL, "taxi.pdf")
		assert.Empty(t, resp.Key)
	})

	t.Run("errors when no receipt is attached", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		service := NewExpenseService(expenseRepo, new(MockReceiptStore), zap.NewNop())
		expense := newPendingExpense(t, companyID)

		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		_, err := service.ReceiptDownloadURL(context.Background(), companyID, expense.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}
