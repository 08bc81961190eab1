package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/application/services"
)

// writeError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as 500 with msg.
func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	var (
		ve *authflow.ValidationError
		de *authflow.CodeDeliveryError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrAttemptNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoCode):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDevLookupDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, authflow.ErrBusy), errors.Is(err, authflow.ErrClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, authflow.ErrInvalidCode), errors.Is(err, services.ErrInvalidGrant):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &de):
		if de.Throttled() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": de.Error()})
			return
		}
		logger.Warn("otp delivery failed", zap.Error(de.Err))
		c.JSON(http.StatusBadGateway, gin.H{"error": de.Error()})
	case errors.Is(err, services.ErrDeletionFailed):
		logger.Error("delete user failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to delete user"})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
