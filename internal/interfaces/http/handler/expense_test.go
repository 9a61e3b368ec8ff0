package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appfinance "github.com/bizkit/backend/internal/application/finance"
	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
)

func newExpenseTestHandler(expenseRepo *MockExpenseRepository, receipts appfinance.ReceiptStore) *ExpenseHandler {
	if receipts == nil {
		receipts = &fakeReceiptStore{}
	}
	service := appfinance.NewExpenseService(expenseRepo, receipts, zap.NewNop())
	return NewExpenseHandler(service)
}

func newTestExpense(t *testing.T, companyID uuid.UUID) *finance.Expense {
	amount, err := valueobject.NewMoneyFromMinorUnits(7500, valueobject.EUR)
	require.NoError(t, err)
	expense, err := finance.NewExpense(companyID, "Train tickets", finance.ExpenseCategoryTravel, amount, time.Now())
	require.NoError(t, err)
	return expense
}

func TestExpenseHandler_Create(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("records a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expenseRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		body := []byte(`{"description":"Train tickets","category":"TRAVEL","amount_minor":7500,"currency":"EUR"}`)
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
		assert.Contains(t, rec.Body.String(), "75.00 EUR")
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(new(MockExpenseRepository), nil))
		body := []byte(`{"description":"Misc","category":"GROCERIES","amount_minor":1000,"currency":"EUR"}`)
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_INVALID_INPUT")
	})

	t.Run("rejects a missing amount", func(t *testing.T) {
		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(new(MockExpenseRepository), nil))
		body := []byte(`{"description":"Misc","category":"TRAVEL","currency":"EUR"}`)
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExpenseHandler_Transitions(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("approves a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses/"+expense.ID.String()+"/approve", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
	})

	t.Run("refuses to pay a pending expense", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses/"+expense.ID.String()+"/pay", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "ERR_INVALID_STATE")
	})
}

func TestExpenseHandler_ReceiptUploadURL(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("issues a presigned upload URL", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)
		expenseRepo.On("Save", mock.Anything, expense).Return(nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		body := []byte(`{"filename":"ticket.pdf","content_type":"application/pdf"}`)
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses/"+expense.ID.String()+"/receipt-upload-url", body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://bucket.test/put/receipts/"+companyID.String())
		assert.Contains(t, rec.Body.String(), "ticket.pdf")
		assert.NotEmpty(t, expense.ReceiptKey)
	})

	t.Run("requires filename and content type", func(t *testing.T) {
		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(new(MockExpenseRepository), nil))
		rec := performJSON(router, http.MethodPost, "/api/v1/expenses/"+uuid.NewString()+"/receipt-upload-url", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExpenseHandler_ReceiptDownloadURL(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("presigns the stored receipt", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		require.NoError(t, expense.AttachReceipt("receipts/x/y/ticket.pdf"))
		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		rec := performJSON(router, http.MethodGet, "/api/v1/expenses/"+expense.ID.String()+"/receipt-download-url", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://bucket.test/get/receipts/x/y/ticket.pdf")
	})

	t.Run("404 when no receipt is attached", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		expenseRepo.On("FindByIDForCompany", mock.Anything, companyID, expense.ID).Return(expense, nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		rec := performJSON(router, http.MethodGet, "/api/v1/expenses/"+expense.ID.String()+"/receipt-download-url", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestExpenseHandler_List(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("filters by status", func(t *testing.T) {
		expenseRepo := new(MockExpenseRepository)
		expense := newTestExpense(t, companyID)
		expenseRepo.On("FindByStatus", mock.Anything, companyID, finance.ExpenseStatusPending, mock.Anything).
			Return([]finance.Expense{*expense}, nil)

		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(expenseRepo, nil))
		rec := performJSON(router, http.MethodGet, "/api/v1/expenses?status=PENDING", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Train tickets")
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		router := newAuthedRouter(companyID, userID, newExpenseTestHandler(new(MockExpenseRepository), nil))
		rec := performJSON(router, http.MethodGet, "/api/v1/expenses?status=ARCHIVED", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
