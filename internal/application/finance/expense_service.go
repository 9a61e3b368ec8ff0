package finance

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bizkit/backend/internal/domain/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// receiptURLExpiry is how long presigned receipt URLs stay valid
const receiptURLExpiry = 15 * time.Minute

// ReceiptStore abstracts the object store that holds expense receipts.
// The infrastructure layer provides S3-backed and stub implementations.
type ReceiptStore interface {
	// GenerateUploadURL returns a presigned PUT URL for the given key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the given key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// ReceiptObjectKey builds the object key for an expense receipt. Receipts
// are namespaced by company so a presigned URL can never cross tenants.
func ReceiptObjectKey(companyID, expenseID uuid.UUID, filename string) string {
	return fmt.Sprintf("receipts/%s/%s/%s", companyID.String(), expenseID.String(), filename)
}

// ExpenseService handles expense business operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	receipts    ReceiptStore
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, receipts ReceiptStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		receipts:    receipts,
		logger:      logger,
	}
}

// Create records a new pending expense
func (s *ExpenseService) Create(ctx context.Context, companyID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	amount, err := valueobject.NewMoneyFromMinorUnits(req.AmountMinor, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpense(companyID, req.Description, finance.ExpenseCategory(req.Category), amount, req.ExpenseDate)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if err := expense.LinkProject(*req.ProjectID); err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, companyID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses for a company, optionally filtered by status
func (s *ExpenseService) List(ctx context.Context, companyID uuid.UUID, status string, filter shared.Filter) ([]ExpenseResponse, error) {
	var (
		expenses []finance.Expense
		err      error
	)

	if status != "" {
		expenseStatus := finance.ExpenseStatus(strings.ToUpper(status))
		if !expenseStatus.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown expense status "+status)
		}
		expenses, err = s.expenseRepo.FindByStatus(ctx, companyID, expenseStatus, filter)
	} else {
		expenses, err = s.expenseRepo.FindAllForCompany(ctx, companyID, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for idx := range expenses {
		responses = append(responses, ToExpenseResponse(&expenses[idx]))
	}
	return responses, nil
}

// Approve transitions a pending expense to APPROVED
func (s *ExpenseService) Approve(ctx context.Context, companyID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	return s.transition(ctx, companyID, expenseID, (*finance.Expense).Approve)
}

// Reject transitions a pending expense to REJECTED
func (s *ExpenseService) Reject(ctx context.Context, companyID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	return s.transition(ctx, companyID, expenseID, (*finance.Expense).Reject)
}

// MarkPaid transitions an approved expense to PAID
func (s *ExpenseService) MarkPaid(ctx context.Context, companyID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	return s.transition(ctx, companyID, expenseID, (*finance.Expense).MarkPaid)
}

func (s *ExpenseService) transition(ctx context.Context, companyID, expenseID uuid.UUID, apply func(*finance.Expense) error) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := apply(expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ReceiptUploadURL issues a presigned upload URL for an expense receipt and
// records the receipt key on the expense
func (s *ExpenseService) ReceiptUploadURL(ctx context.Context, companyID, expenseID uuid.UUID, req ReceiptUploadRequest) (*ReceiptURLResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}

	filename := path.Base(req.Filename)
	if filename == "" || filename == "." || filename == ".." || filename == "/" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid receipt filename")
	}

	key := ReceiptObjectKey(companyID, expenseID, filename)
	url, expiresAt, err := s.receipts.GenerateUploadURL(ctx, key, req.ContentType, receiptURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign receipt upload",
			zap.String("expense_id", expenseID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Could not generate receipt upload URL")
	}

	if err := expense.AttachReceipt(key); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	return &ReceiptURLResponse{URL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// ReceiptDownloadURL issues a presigned download URL for the receipt
// attached to an expense
func (s *ExpenseService) ReceiptDownloadURL(ctx context.Context, companyID, expenseID uuid.UUID) (*ReceiptURLResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.ReceiptKey == "" {
		return nil, shared.NewDomainError("NOT_FOUND", "No receipt attached to this expense")
	}

	url, expiresAt, err := s.receipts.GenerateDownloadURL(ctx, expense.ReceiptKey, receiptURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign receipt download",
			zap.String("expense_id", expenseID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Could not generate receipt download URL")
	}

	return &ReceiptURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}
