package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// HerdService describes the herd operations the HTTP layer can perform.
type HerdService interface {
	Herd(ctx context.Context) ([]models.HerdMember, error)
	Member(ctx context.Context, name string) (*models.HerdMember, error)
	Stock(ctx context.Context) (models.StockSnapshot, error)
	RefreshStock(ctx context.Context) (models.StockSnapshot, error)
}

// HerdHandler serves herd projections and the stock ledger.
type HerdHandler struct {
	svc    HerdService
	logger *zap.Logger
}

// NewHerdHandler constructs the HTTP handler adapter.
func NewHerdHandler(svc HerdService, logger *zap.Logger) *HerdHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HerdHandler{svc: svc, logger: logger}
}

// List returns every herd member with its yield projection.
func (h *HerdHandler) List(c *gin.Context) {
	members, err := h.svc.Herd(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to load herd", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"herd": members})
}

// Get returns a single herd member by name.
func (h *HerdHandler) Get(c *gin.Context) {
	member, err := h.svc.Member(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.logger, "failed to load herd member", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Stock returns the current stock snapshot.
func (h *HerdHandler) Stock(c *gin.Context) {
	snap, err := h.svc.Stock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to load stock", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// RefreshStock recomputes the stock from the herd.
func (h *HerdHandler) RefreshStock(c *gin.Context) {
	snap, err := h.svc.RefreshStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to refresh stock", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
