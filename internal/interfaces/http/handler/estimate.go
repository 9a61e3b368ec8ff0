package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizkit/backend/internal/application/crm"
)

// EstimateHandler handles estimate HTTP requests
type EstimateHandler struct {
	BaseHandler
	conversionService *crm.ConversionService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(conversionService *crm.ConversionService) *EstimateHandler {
	return &EstimateHandler{
		conversionService: conversionService,
	}
}

// RegisterRoutes registers estimate routes
func (h *EstimateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	estimates := rg.Group("/estimates")
	{
		estimates.POST("/:id/convert", h.Convert)
	}
}

// ConvertEstimateRequest is the optional conversion payload
type ConvertEstimateRequest struct {
	// DepositPercentage, when set, produces a deposit invoice for that
	// share of the estimate total instead of a full invoice
	DepositPercentage *int `json:"depositPercentage" binding:"omitempty,min=0,max=100"`
}

// Convert turns an accepted estimate into a project and an invoice
func (h *EstimateHandler) Convert(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	// ContentLength is -1 for chunked requests, which still carry a body
	var req ConvertEstimateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	depositPercentage := 0
	if req.DepositPercentage != nil {
		depositPercentage = *req.DepositPercentage
	}

	result, err := h.conversionService.Convert(c.Request.Context(), companyID, estimateID, depositPercentage)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
