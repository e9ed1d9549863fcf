package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/service/views"
	"github.com/mamadbah2/stockroom/internal/store"
)

// Deps are the services the API is served from.
type Deps struct {
	Inventory *inventory.Service
	Reporting *reporting.Service
	Sessions  *views.SessionManager
	Settings  config.Settings
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Deps, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	inv := deps.Inventory
	handlerLogger := logger.Named("handlers")
	runners := make(map[string]handlers.Runner)
	api := r.Group("/api")

	items := resource(api, runners, "items", handlers.NewResourceHandler(inv.Items, inventory.ItemSchema, inv.Now, handlerLogger))
	resource(api, runners, "categories", handlers.NewResourceHandler(inv.Categories, inventory.CategorySchema, inv.Now, handlerLogger))
	resource(api, runners, "suppliers", handlers.NewResourceHandler(inv.Suppliers, inventory.SupplierSchema, inv.Now, handlerLogger))
	resource(api, runners, "purchase-orders", handlers.NewResourceHandler(inv.PurchaseOrders, inventory.PurchaseOrderSchema, inv.Now, handlerLogger))
	resource(api, runners, "stock-outs", handlers.NewResourceHandler(inv.StockOuts, inventory.StockOutSchema, inv.Now, handlerLogger))
	resource(api, runners, "orders", handlers.NewResourceHandler(inv.Orders, inventory.OrderSchema, inv.Now, handlerLogger))
	resource(api, runners, "movements", handlers.NewResourceHandler(inv.Movements, inventory.MovementSchema, inv.Now, handlerLogger))
	customers := resource(api, runners, "customers", handlers.NewResourceHandler(inv.Customers, inventory.CustomerSchema, inv.Now, handlerLogger))
	resource(api, runners, "users", handlers.NewResourceHandler(inv.Users, inventory.UserSchema, inv.Now, handlerLogger))

	invHandler := handlers.NewInventoryHandler(inv, deps.Settings, handlerLogger)
	runners["customer-stats"] = invHandler.RunCustomerStats
	customers.GET("/stats", invHandler.CustomerStats)
	customers.GET("/:id/orders", invHandler.CustomerOrders)
	items.GET("/:id/movements", invHandler.ItemMovements)
	api.GET("/status", invHandler.Status)
	api.GET("/settings", invHandler.Settings)

	reportHandler := handlers.NewReportHandler(deps.Reporting, inv.Now, handlerLogger)
	reports := api.Group("/reports")
	reports.GET("/dashboard", reportHandler.Dashboard)
	reports.GET("/movements/stats", reportHandler.MovementStats)
	reports.GET("/movements/monthly", reportHandler.MonthlyMovements)
	reports.GET("/sales/monthly", reportHandler.MonthlySales)
	reports.GET("/top-products", reportHandler.TopProducts)
	reports.GET("/stock-outs/reasons", reportHandler.StockOutReasons)
	reports.GET("/low-stock", reportHandler.LowStock)
	reports.GET("/summary", reportHandler.Summary)

	viewHandler := handlers.NewViewHandler(deps.Sessions, runners, handlerLogger)
	sessions := api.Group("/sessions/:sid")
	sessions.DELETE("", viewHandler.DeleteSession)
	sessions.GET("/views/:view", viewHandler.Get)
	sessions.PUT("/views/:view", viewHandler.Put)
	sessions.DELETE("/views/:view", viewHandler.Delete)
	sessions.GET("/views/:view/results", viewHandler.Results)

	logger.Info("router initialized", zap.Int("views", len(runners)))
	return r
}

// resource registers the CRUD routes of one store and its view runner.
func resource[T store.Record[T]](api *gin.RouterGroup, runners map[string]handlers.Runner, name string, h *handlers.ResourceHandler[T]) *gin.RouterGroup {
	g := api.Group("/" + name)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	runners[name] = h.Run
	return g
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
