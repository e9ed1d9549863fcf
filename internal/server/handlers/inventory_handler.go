package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/store"
)

// InventoryHandler serves the lookups that span several stores, plus the
// status and settings endpoints.
type InventoryHandler struct {
	inv      *inventory.Service
	settings config.Settings
	logger   *zap.Logger
}

// NewInventoryHandler constructs the cross-store HTTP adapter.
func NewInventoryHandler(inv *inventory.Service, settings config.Settings, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{inv: inv, settings: settings, logger: logger}
}

// CustomerStats answers GET /api/customers/stats.
func (h *InventoryHandler) CustomerStats(c *gin.Context) {
	stats, err := h.inv.CustomerStats(specFromRequest(c))
	if err != nil {
		respondError(c, h.logger, "customer stats failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats, "count": len(stats)})
}

// RunCustomerStats executes spec over the derived customer statistics.
func (h *InventoryHandler) RunCustomerStats(spec query.Spec) (any, error) {
	return h.inv.CustomerStats(spec)
}

// CustomerOrders answers GET /api/customers/:id/orders. Orders of a deleted
// customer are still listed, under the unknown customer placeholder.
func (h *InventoryHandler) CustomerOrders(c *gin.Context) {
	id := c.Param("id")
	orders, err := h.inv.CustomerOrders(id)
	if err != nil {
		respondError(c, h.logger, "customer orders failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer": h.inv.ResolveCustomer(id),
		"data":     orders,
		"count":    len(orders),
	})
}

// ItemMovements answers GET /api/items/:id/movements.
func (h *InventoryHandler) ItemMovements(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.inv.Items.Get(id); !ok {
		respondError(c, h.logger, "item movements failed", store.ErrNotFound)
		return
	}

	movements, err := h.inv.ItemMovements(id)
	if err != nil {
		respondError(c, h.logger, "item movements failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "count": len(movements)})
}

// Status answers GET /api/status with the load status of every store.
func (h *InventoryHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stores": h.inv.Statuses()})
}

// Settings answers GET /api/settings.
func (h *InventoryHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings)
}
