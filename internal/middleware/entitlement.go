package middleware

import (
	"errors"
	"net/http"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
)

// RequirePremium rejects requests from users without an active entitlement.
// A rejected action opens the upgrade prompt and records view as pending, so
// a later purchase lands the user on view. Rejected reads leave the state alone.
func RequirePremium(nav *services.NavigationService, view models.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		if readOnly(c.Request.Method) {
			if nav.Entitled() {
				c.Next()
				return
			}
			abortUpgrade(c, services.ErrPremiumRequired, nil)
			return
		}

		pending, err := nav.RequirePremium(c.Request.Context(), view)
		if err == nil {
			c.Next()
			return
		}
		if errors.Is(err, services.ErrPremiumRequired) {
			var pendingView *models.View
			if pending != nil {
				pendingView = pending.PendingGatedView
			}
			abortUpgrade(c, err, pendingView)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func abortUpgrade(c *gin.Context, err error, pending *models.View) {
	c.AbortWithStatusJSON(http.StatusPaymentRequired, models.UpgradeRequiredResponse{
		Error:           "upgrade_required",
		Message:         err.Error(),
		UpgradeRequired: true,
		PendingView:     pending,
	})
}
