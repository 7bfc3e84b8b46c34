package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/service/catalog"
)

// MenuHandler exposes catalog browsing and item management over HTTP.
type MenuHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewMenuHandler constructs the menu HTTP handler adapter.
func NewMenuHandler(svc *catalog.Service, logger *zap.Logger) *MenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuHandler{svc: svc, logger: logger}
}

type addItemRequest struct {
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Stock     int             `json:"stock"`
}

type updateItemRequest struct {
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

// List returns the full catalog snapshot in display order.
func (h *MenuHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.svc.Items()})
}

// Add creates a new menu item from an operator-entered base price.
func (h *MenuHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.AddItem(req.Name, req.BasePrice, req.Stock)
	if err != nil {
		h.logger.Warn("add item rejected", zap.String("name", req.Name), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update replaces the price and/or stock of an existing item. Omitted fields
// are left unchanged.
func (h *MenuHandler) Update(c *gin.Context) {
	name := c.Param("name")

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.svc.UpdateItem(name, req.Price, req.Stock)
	if err != nil {
		h.logger.Warn("update item rejected", zap.String("name", name), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
