package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizkit/backend/internal/application/finance"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	BaseHandler
	invoiceService *finance.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *finance.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/finalize", h.Finalize)
		invoices.POST("/:id/pay", h.MarkPaid)
		invoices.DELETE("/:id", h.Delete)
	}
}

// Get returns a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.invoiceService.GetByID(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Finalize moves a draft invoice to finalized and stamps the issue date
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.invoiceService.Finalize(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkPaid records payment of a finalized invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.invoiceService.MarkPaid(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), companyID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
