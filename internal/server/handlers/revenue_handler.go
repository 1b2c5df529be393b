package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
	"github.com/mamadbah2/yakshop/internal/service/reporting"
)

// RevenueService describes the revenue operations the HTTP layer can perform.
type RevenueService interface {
	Revenue(ctx context.Context, granularity string) ([]models.RevenueBucket, error)
}

// RevenueHandler serves revenue time series.
type RevenueHandler struct {
	svc    RevenueService
	logger *zap.Logger
}

// NewRevenueHandler constructs the HTTP handler adapter.
func NewRevenueHandler(svc RevenueService, logger *zap.Logger) *RevenueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevenueHandler{svc: svc, logger: logger}
}

// Revenue returns buckets for ?granularity=day|month (day by default).
func (h *RevenueHandler) Revenue(c *gin.Context) {
	granularity := c.DefaultQuery("granularity", reporting.GranularityDay)

	buckets, err := h.svc.Revenue(c.Request.Context(), granularity)
	if err != nil {
		respondError(c, h.logger, "failed to aggregate revenue", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"granularity": granularity, "buckets": buckets})
}
