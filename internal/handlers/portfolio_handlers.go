package handlers

import (
	"net/http"
	"strconv"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles the ledger and dashboard endpoints
type PortfolioHandler struct {
	portfolioSvc *services.PortfolioService
	dashboardSvc *services.DashboardService
	aiSvc        *services.AIService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioSvc *services.PortfolioService, dashboardSvc *services.DashboardService, aiSvc *services.AIService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc: portfolioSvc,
		dashboardSvc: dashboardSvc,
		aiSvc:        aiSvc,
	}
}

// Get handles GET /api/portfolio
// @Summary Get the portfolio
// @Description Every holding with its value and profit/loss, plus totals and allocation
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.PortfolioView
// @Router /api/portfolio [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolioSvc.View())
}

// AddHolding handles POST /api/portfolio/holdings
// @Summary Add a holding
// @Description Quantity is in lots (100 shares) for equities and in units for crypto
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body models.AddHoldingRequest true "Holding"
// @Success 201 {object} models.Holding
// @Failure 400 {object} models.ErrorResponse
// @Router /api/portfolio/holdings [post]
func (h *PortfolioHandler) AddHolding(c *gin.Context) {
	var req models.AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	holding, err := h.portfolioSvc.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holding)
}

// RemoveHolding handles DELETE /api/portfolio/holdings/:index
// @Summary Remove a holding
// @Tags portfolio
// @Param index path int true "Position in the ledger"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/portfolio/holdings/{index} [delete]
func (h *PortfolioHandler) RemoveHolding(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid holding index",
		})
		return
	}

	if _, err := h.portfolioSvc.Remove(c.Request.Context(), index); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AnalyzeAI handles POST /api/portfolio/ai-analysis
// @Summary Ask the AI to assess the portfolio (premium)
// @Description Starts the request; the result appears in the portfolio_analysis slot
// @Tags portfolio
// @Produce json
// @Success 202 {object} models.StartedResponse
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/portfolio/ai-analysis [post]
func (h *PortfolioHandler) AnalyzeAI(c *gin.Context) {
	started, err := h.aiSvc.AnalyzePortfolio(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, started)
}

// Dashboard handles GET /api/dashboard
// @Summary Get the dashboard
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Router /api/dashboard [get]
func (h *PortfolioHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardSvc.Dashboard())
}
