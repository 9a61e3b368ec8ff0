package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/bizkit/backend/internal/application/finance"
)

// RecurringInvoiceGenerator triggers one recurring invoice generation run
type RecurringInvoiceGenerator interface {
	GenerateDueInvoices(ctx context.Context) (*finance.GenerationResult, error)
}

// RecurringInvoiceHandler handles recurring invoice HTTP requests
type RecurringInvoiceHandler struct {
	BaseHandler
	generator RecurringInvoiceGenerator
}

// NewRecurringInvoiceHandler creates a new recurring invoice handler
func NewRecurringInvoiceHandler(generator RecurringInvoiceGenerator) *RecurringInvoiceHandler {
	return &RecurringInvoiceHandler{
		generator: generator,
	}
}

// RegisterRoutes registers recurring invoice routes
func (h *RecurringInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recurring := rg.Group("/recurring-invoices")
	{
		recurring.POST("/generate", h.Generate)
	}
}

// Generate runs one generation pass over all due recurring templates.
// The scheduler runs the same pass on an interval; this endpoint exists
// for operators who need the batch to run now.
func (h *RecurringInvoiceHandler) Generate(c *gin.Context) {
	result, err := h.generator.GenerateDueInvoices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
