package handlers

import (
	"net/http"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles login, registration and settings endpoints
type SessionHandler struct {
	sessionSvc *services.SessionService
	riskSvc    *services.RiskService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionSvc *services.SessionService, riskSvc *services.RiskService) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		riskSvc:    riskSvc,
	}
}

// Login handles POST /api/session/login
// @Summary Log in
// @Description Sign in under a display name and open the dashboard. Credentials are not checked.
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login form"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := h.sessionSvc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Register handles POST /api/session/register
// @Summary Start registration
// @Description Check the password confirmation and open the risk questionnaire
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration form"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.sessionSvc.Register(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_view": models.ViewRiskAssessment})
}

// Questions handles GET /api/risk/questions
// @Summary List risk questions
// @Tags session
// @Produce json
// @Success 200 {array} models.RiskQuestion
// @Router /api/risk/questions [get]
func (h *SessionHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, h.riskSvc.Questions())
}

// SetRiskAnswers handles PUT /api/session/risk-answers
// @Summary Record questionnaire answers
// @Description Merge answers (question index to option weight) into the current draft
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.RiskAnswersRequest true "Answers"
// @Success 200 {object} map[string]int
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/session/risk-answers [put]
func (h *SessionHandler) SetRiskAnswers(c *gin.Context) {
	var req models.RiskAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	answers, err := h.sessionSvc.SetRiskAnswers(c.Request.Context(), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// CompleteRegistration handles POST /api/session/register/complete
// @Summary Finish registration
// @Description Score the questionnaire, assign the risk profile and open the dashboard.
// @Description Unanswered questions score 0 and are reported as a W3001 warning.
// @Tags session
// @Produce json
// @Success 200 {object} models.WarningsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/session/register/complete [post]
func (h *SessionHandler) CompleteRegistration(c *gin.Context) {
	ctx, wc := services.NewWarningContext(c.Request.Context())

	assessment, err := h.sessionSvc.CompleteRegistration(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withWarnings(assessment, wc.GetWarnings()))
}

// Logout handles POST /api/session/logout
// @Summary Log out
// @Tags session
// @Success 204
// @Router /api/session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessionSvc.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Profile handles GET /api/session/profile
// @Summary Get the user card
// @Tags session
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Router /api/session/profile [get]
func (h *SessionHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionSvc.Profile())
}

// UpdateProfile handles PUT /api/session/profile
// @Summary Edit the profile
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/profile [put]
func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := h.sessionSvc.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ChangePassword handles POST /api/session/password
// @Summary Change password (simulated)
// @Tags session
// @Accept json
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/password [post]
func (h *SessionHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.sessionSvc.ChangePassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
