package handlers

import (
	"net/http"

	"github.com/epeers/investdash/internal/cache"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
)

// AIHandler handles the analysis screen, AskAI and the async result slots
type AIHandler struct {
	aiSvc       *services.AIService
	analysisSvc *services.AnalysisService
	slots       *cache.SlotCache
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(aiSvc *services.AIService, analysisSvc *services.AnalysisService, slots *cache.SlotCache) *AIHandler {
	return &AIHandler{
		aiSvc:       aiSvc,
		analysisSvc: analysisSvc,
		slots:       slots,
	}
}

// Models handles GET /api/analysis/models
// @Summary List the simulated analysis models (premium)
// @Tags analysis
// @Produce json
// @Success 200 {array} models.AnalysisModel
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Router /api/analysis/models [get]
func (h *AIHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, h.analysisSvc.Models())
}

// RunAnalysis handles POST /api/analysis/run
// @Summary Run a simulated model on an asset (premium)
// @Description The result appears in the analysis slot after a short delay
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.RunAnalysisRequest true "Asset and model"
// @Success 202 {object} models.StartedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/analysis/run [post]
func (h *AIHandler) RunAnalysis(c *gin.Context) {
	var req models.RunAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	started, err := h.analysisSvc.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, started)
}

// DeepDive handles POST /api/analysis/deep-dive
// @Summary Ask the AI for a follow-up on a model run (premium)
// @Description The result appears in the deep_dive slot
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.DeepDiveRequest true "Asset and model"
// @Success 202 {object} models.StartedResponse
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/analysis/deep-dive [post]
func (h *AIHandler) DeepDive(c *gin.Context) {
	var req models.DeepDiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	started, err := h.aiSvc.DeepDive(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, started)
}

// GetChat handles GET /api/ai/chat
// @Summary Get the AskAI conversation (premium)
// @Tags ai
// @Produce json
// @Success 200 {array} models.ChatMessage
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Router /api/ai/chat [get]
func (h *AIHandler) GetChat(c *gin.Context) {
	c.JSON(http.StatusOK, h.aiSvc.Chat())
}

// Ask handles POST /api/ai/chat
// @Summary Ask the AI a question (premium)
// @Description Appends the question and a placeholder answer; the placeholder is replaced when the model responds
// @Tags ai
// @Accept json
// @Produce json
// @Param request body models.AskRequest true "Question"
// @Success 202 {object} models.StartedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 402 {object} models.UpgradeRequiredResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/ai/chat [post]
func (h *AIHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	started, err := h.aiSvc.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, started)
}

// GetSlot handles GET /api/slots/:slot
// @Summary Get the display state of an async result slot
// @Tags ai
// @Produce json
// @Param slot path string true "portfolio_analysis, analysis or deep_dive"
// @Success 200 {object} models.SlotState
// @Failure 404 {object} models.ErrorResponse
// @Router /api/slots/{slot} [get]
func (h *AIHandler) GetSlot(c *gin.Context) {
	slot := models.Slot(c.Param("slot"))
	if !slot.Valid() {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "unknown slot: " + string(slot),
		})
		return
	}
	c.JSON(http.StatusOK, h.slots.Get(slot))
}
