package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/service/order"
)

// OrderHandler exposes order placement and basket quoting over HTTP.
type OrderHandler struct {
	svc          *order.Service
	currencyCode string
	logger       *zap.Logger
}

// NewOrderHandler constructs the order HTTP handler adapter.
func NewOrderHandler(svc *order.Service, currencyCode string, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, currencyCode: currencyCode, logger: logger}
}

type quoteRequest struct {
	Items map[string]int `json:"items"`
}

// Place commits an order: all basket lines apply or none do.
func (h *OrderHandler) Place(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	receipt, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("order rejected", zap.String("customer", req.CustomerName), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"receipt":         receipt,
		"total_formatted": models.FormatAmount(h.currencyCode, receipt.Total),
	})
}

// Quote prices the basket at current prices without placing an order.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quote payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	total, err := h.svc.Quote(req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":           total,
		"total_formatted": models.FormatAmount(h.currencyCode, total),
	})
}
