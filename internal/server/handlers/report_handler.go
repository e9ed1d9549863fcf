package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

const defaultTopProducts = 5

// ReportHandler serves the dashboard and report figures.
type ReportHandler struct {
	svc    *reporting.Service
	now    func() time.Time
	logger *zap.Logger
}

// NewReportHandler constructs the reports HTTP adapter.
func NewReportHandler(svc *reporting.Service, now func() time.Time, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{svc: svc, now: now, logger: logger}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

func (h *ReportHandler) MovementStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MovementStats())
}

func (h *ReportHandler) MonthlyMovements(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MonthlyMovements())
}

func (h *ReportHandler) MonthlySales(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MonthlySales())
}

// TopProducts answers GET /api/reports/top-products?limit=n.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit := defaultTopProducts
	if raw := c.Query(paramLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.logger.Warn("invalid top products limit", zap.String("limit", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer", "param": paramLimit})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.svc.TopProducts(limit))
}

func (h *ReportHandler) StockOutReasons(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.StockOutsByReason())
}

func (h *ReportHandler) LowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.LowStockAlerts())
}

// Summary renders the plain text report.
func (h *ReportHandler) Summary(c *gin.Context) {
	c.String(http.StatusOK, h.svc.Summary(h.now()))
}
