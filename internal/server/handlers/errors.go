package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
	"github.com/mamadbah2/yakshop/internal/service/herd"
	"github.com/mamadbah2/yakshop/internal/service/orders"
	"github.com/mamadbah2/yakshop/internal/service/reporting"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrMissingAmounts),
		errors.Is(err, orders.ErrInvalidAmount),
		errors.Is(err, reporting.ErrUnknownGranularity):
		return http.StatusBadRequest
	case errors.Is(err, herd.ErrAnimalNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInsufficientStock),
		errors.Is(err, models.ErrStaleSnapshot):
		return http.StatusConflict
	case errors.Is(err, models.ErrFetchFailed),
		errors.Is(err, models.ErrSubmitFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if status == http.StatusBadGateway {
		logger.Warn(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
