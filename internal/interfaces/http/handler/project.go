package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bizkit/backend/internal/application/project"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	BaseHandler
	profitabilityService *project.ProfitabilityService
	budgetService        *project.BudgetService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	profitabilityService *project.ProfitabilityService,
	budgetService *project.BudgetService,
) *ProjectHandler {
	return &ProjectHandler{
		profitabilityService: profitabilityService,
		budgetService:        budgetService,
	}
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("/:id/profitability", h.Profitability)
		projects.GET("/:id/budget-alert", h.BudgetAlert)
	}
}

// Profitability reports revenue, costs, profit and margin for a project
func (h *ProjectHandler) Profitability(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.profitabilityService.GetProfitability(c.Request.Context(), companyID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BudgetAlert reports budget consumption and alert level for a project
func (h *ProjectHandler) BudgetAlert(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context required")
		return
	}

	result, err := h.budgetService.GetBudgetAlert(c.Request.Context(), companyID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
