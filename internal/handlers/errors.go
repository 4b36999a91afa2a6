package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps a service error onto its HTTP status and error body.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: verr.Error(),
			Field:   verr.Field,
		})
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnknownView),
		errors.Is(err, services.ErrInvalidPlan),
		errors.Is(err, services.ErrEmptyQuestion):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrHoldingNotFound),
		errors.Is(err, repository.ErrAssetNotFound),
		errors.Is(err, repository.ErrChartNotFound),
		errors.Is(err, repository.ErrModelNotFound),
		errors.Is(err, repository.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrPremiumRequired):
		resp := models.UpgradeRequiredResponse{
			Error:           "upgrade_required",
			Message:         err.Error(),
			UpgradeRequired: true,
		}
		var perr *services.PremiumRequiredError
		if errors.As(err, &perr) {
			v := perr.PendingView
			resp.PendingView = &v
		}
		c.JSON(http.StatusPaymentRequired, resp)
	case errors.Is(err, services.ErrNotRegistering):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrBusy):
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "busy",
			Message: err.Error(),
		})
	default:
		log.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// withWarnings wraps data with the warnings collected while producing it.
func withWarnings(data any, warnings []models.Warning) models.WarningsResponse {
	return models.WarningsResponse{Data: data, Warnings: warnings}
}
