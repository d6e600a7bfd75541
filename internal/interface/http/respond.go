package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarthotel/user-service/internal/domain"
	"github.com/smarthotel/user-service/pkg/response"
)

// respondError maps domain errors onto the API status-code convention:
// validation 400, auth 401, forbidden 403, not found 404, conflict 409.
// Anything else is logged and surfaced as a generic 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		response.Error[any](c, http.StatusBadRequest, ve.Message, nil)
		return
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		response.Error[any](c, http.StatusConflict, ce.Error(), map[string]string{"field": ce.Field})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenUserNotFound):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrInsufficientRole),
		errors.Is(err, domain.ErrSelfDelete):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
