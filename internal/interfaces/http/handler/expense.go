package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizkit/backend/internal/application/finance"
	"github.com/bizkit/backend/internal/domain/shared"
	"github.com/bizkit/backend/internal/interfaces/http/middleware"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	BaseHandler
	expenseService *finance.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.Get)
		expenses.POST("/:id/approve", h.Approve)
		expenses.POST("/:id/reject", h.Reject)
		expenses.POST("/:id/pay", h.MarkPaid)
		expenses.POST("/:id/receipt-upload-url", h.ReceiptUploadURL)
		expenses.GET("/:id/receipt-download-url", h.ReceiptDownloadURL)
	}
}

// Create records a new pending expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.expenseService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns expenses for the company, optionally filtered by status
func (h *ExpenseHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := h.expenseService.List(c.Request.Context(), companyID, c.Query("status"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.expenseService.GetByID(c.Request.Context(), companyID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve moves a pending expense to approved
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.transition(c, h.expenseService.Approve)
}

// Reject moves a pending expense to rejected
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.transition(c, h.expenseService.Reject)
}

// MarkPaid records payment of an approved expense
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.expenseService.MarkPaid)
}

func (h *ExpenseHandler) transition(c *gin.Context, apply func(ctx context.Context, companyID, expenseID uuid.UUID) (*finance.ExpenseResponse, error)) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := apply(c.Request.Context(), companyID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReceiptUploadURL issues a presigned URL to upload a receipt for an expense
func (h *ExpenseHandler) ReceiptUploadURL(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req finance.ReceiptUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.expenseService.ReceiptUploadURL(c.Request.Context(), companyID, expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReceiptDownloadURL issues a presigned URL to download the attached receipt
func (h *ExpenseHandler) ReceiptDownloadURL(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.expenseService.ReceiptDownloadURL(c.Request.Context(), companyID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
