package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/yakshop/internal/domain/models"
	"github.com/mamadbah2/yakshop/internal/service/orders"
)

// OrderService describes the order operations the HTTP layer can perform.
type OrderService interface {
	PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	Quote(ctx context.Context, req models.OrderRequest) (orders.Reconciliation, error)
	History(ctx context.Context) ([]models.Order, error)
	Pricing() orders.Pricing
}

// OrderHandler places orders and lists the order history.
type OrderHandler struct {
	svc    OrderService
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc OrderService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

type quoteResponse struct {
	MilkGranted float64            `json:"milk"`
	WoolGranted float64            `json:"wool"`
	MilkCost    float64            `json:"milkCost"`
	WoolCost    float64            `json:"woolCost"`
	TotalCost   float64            `json:"totalCost"`
	Status      models.OrderStatus `json:"orderStatus"`
	Shortfall   string             `json:"shortfall,omitempty"`
}

// Place validates and records an order.
func (h *OrderHandler) Place(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "failed to place order", err)
		return
	}

	message := "Order placed successfully!"
	if order.Status == models.OrderStatusPartial {
		message = "Partial order fulfilled!"
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "message": message})
}

// Quote previews what an order would be granted and cost.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "failed to quote order", err)
		return
	}

	resp := quoteResponse{
		MilkGranted: rec.MilkGranted,
		WoolGranted: rec.WoolGranted,
		MilkCost:    rec.MilkCost,
		WoolCost:    rec.WoolCost,
		TotalCost:   rec.TotalCost,
		Status:      rec.Status,
	}
	if rec.Shortfall != nil {
		resp.Shortfall = rec.Shortfall.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// History lists every recorded order, oldest first.
func (h *OrderHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to load order history", err)
		return
	}

	if history == nil {
		history = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": history})
}

// Pricing returns the unit prices and the per-field order bound.
func (h *OrderHandler) Pricing(c *gin.Context) {
	p := h.svc.Pricing()
	c.JSON(http.StatusOK, gin.H{
		"milkPricePerLiter": p.MilkPerLiter,
		"woolPricePerSkin":  p.WoolPerSkin,
		"maxOrderUnits":     p.MaxOrderUnits,
	})
}
