package handlers

import (
	"net/http"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/epeers/investdash/internal/state"
	"github.com/gin-gonic/gin"
)

// NavigationHandler handles screen changes, the upgrade prompt and the state snapshot
type NavigationHandler struct {
	navSvc *services.NavigationService
	subSvc *services.SubscriptionService
	store  *state.Store
}

// NewNavigationHandler creates a new NavigationHandler
func NewNavigationHandler(navSvc *services.NavigationService, subSvc *services.SubscriptionService, store *state.Store) *NavigationHandler {
	return &NavigationHandler{
		navSvc: navSvc,
		subSvc: subSvc,
		store:  store,
	}
}

// Get handles GET /api/navigation
// @Summary Current screen and menu
// @Tags navigation
// @Produce json
// @Success 200 {object} models.NavigationOverview
// @Router /api/navigation [get]
func (h *NavigationHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.navSvc.Current())
}

// Navigate handles POST /api/navigation
// @Summary Change screen
// @Description Premium screens without an active entitlement stay put, open the upgrade
// @Description prompt and remember the screen until a subscription is bought.
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body models.NavigateRequest true "Target screen"
// @Success 200 {object} models.WarningsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/navigation [post]
func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.navSvc.Navigate(ctx, req.View)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withWarnings(resp, wc.GetWarnings()))
}

// Subscribe handles POST /api/subscription
// @Summary Buy a subscription (simulated)
// @Description Grants premium for one month or one year and resumes a screen refused for lack of it.
// @Tags subscription
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Plan"
// @Success 200 {object} services.SubscriptionResult
// @Failure 400 {object} models.ErrorResponse
// @Router /api/subscription [post]
func (h *NavigationHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.subSvc.Subscribe(c.Request.Context(), req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DismissUpgrade handles POST /api/subscription/dismiss
// @Summary Close the upgrade prompt
// @Description Closing the prompt forgets the screen that was waiting for entitlement.
// @Tags subscription
// @Produce json
// @Success 200 {object} models.NavigationState
// @Router /api/subscription/dismiss [post]
func (h *NavigationHandler) DismissUpgrade(c *gin.Context) {
	c.JSON(http.StatusOK, h.navSvc.DismissUpgrade(c.Request.Context()))
}

// State handles GET /api/state
// @Summary Snapshot of the whole application state
// @Tags state
// @Produce json
// @Success 200 {object} models.StateSnapshot
// @Router /api/state [get]
func (h *NavigationHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}
