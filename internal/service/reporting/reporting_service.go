package reporting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/aggregate"
	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

const dateLayout = "2006-01-02"

// Series names of the monthly time series.
const (
	SeriesStockIn  = "stock_in"
	SeriesStockOut = "stock_out"
	SeriesRevenue  = "revenue"
	SeriesOrders   = "orders"
)

// SnapshotSink receives exported report snapshots.
type SnapshotSink interface {
	SaveSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error
}

// Service derives dashboard and report figures from the inventory stores.
type Service struct {
	inv      *inventory.Service
	settings config.Settings
	loc      *time.Location
	sinks    map[string]SnapshotSink
	logger   *zap.Logger
}

// NewService wires a new reporting service instance. Time series are
// bucketed in loc.
func NewService(inv *inventory.Service, settings config.Settings, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		inv:      inv,
		settings: settings,
		loc:      loc,
		sinks:    make(map[string]SnapshotSink),
		logger:   logger,
	}
}

// AddSink registers an export destination under name.
func (s *Service) AddSink(name string, sink SnapshotSink) {
	s.sinks[name] = sink
}

// DashboardStats are the headline inventory figures.
type DashboardStats struct {
	TotalItems         int            `json:"total_items"`
	TotalStock         int            `json:"total_stock"`
	InventoryValue     float64        `json:"inventory_value"`
	LowStockCount      int            `json:"low_stock_count"`
	QuantityByCategory map[string]int `json:"quantity_by_category"`
}

// Dashboard computes the headline inventory figures. Every stored category
// appears in QuantityByCategory, with zero when it has no items.
func (s *Service) Dashboard() DashboardStats {
	items := s.inv.Items.Snapshot()

	stats := DashboardStats{TotalItems: len(items)}
	value := decimal.Zero
	for _, item := range items {
		stats.TotalStock += item.Quantity
		value = value.Add(decimal.NewFromFloat(item.UnitCost).Mul(decimal.NewFromInt(int64(item.Quantity))))
		if item.NeedsReorder() {
			stats.LowStockCount++
		}
	}
	stats.InventoryValue = value.Round(2).InexactFloat64()

	quantities := make(map[string]int)
	for _, item := range items {
		quantities[item.CategoryName] += item.Quantity
	}
	names := make([]string, 0)
	for _, c := range s.inv.Categories.Snapshot() {
		names = append(names, c.Name)
	}
	stats.QuantityByCategory = aggregate.Backfill(quantities, names)
	return stats
}

// MovementStats sums movement quantities per type. Transfers are counted, not summed.
type MovementStats struct {
	TotalNewStock    float64 `json:"total_new_stock"`
	TotalStockOut    float64 `json:"total_stock_out"`
	TotalTransfers   int     `json:"total_transfers"`
	TotalAdjustments float64 `json:"total_adjustments"`
}

func (s *Service) MovementStats() MovementStats {
	movements := s.inv.Movements.Snapshot()
	totals := aggregate.TotalsByCategory(movements,
		func(m models.Movement) string { return m.MovementType },
		func(m models.Movement) float64 { return float64(m.Quantity) })
	counts := aggregate.CountByCategory(movements, func(m models.Movement) string { return m.MovementType })

	return MovementStats{
		TotalNewStock:    totals[models.MovementNewStock],
		TotalStockOut:    totals[models.MovementStockOut],
		TotalTransfers:   counts[models.MovementTransfer],
		TotalAdjustments: totals[models.MovementAdjustment],
	}
}

// MonthlyMovements buckets new stock and stock out quantities per month.
func (s *Service) MonthlyMovements() aggregate.TimeSeries {
	return aggregate.TimeSeriesByMonth(s.inv.Movements.Snapshot(),
		func(m models.Movement) time.Time { return m.Date }, s.loc,
		aggregate.Series[models.Movement]{Name: SeriesStockIn, Value: quantityOf(models.MovementNewStock)},
		aggregate.Series[models.Movement]{Name: SeriesStockOut, Value: quantityOf(models.MovementStockOut)},
	)
}

func quantityOf(movementType string) func(models.Movement) float64 {
	return func(m models.Movement) float64 {
		if m.MovementType != movementType {
			return 0
		}
		return float64(m.Quantity)
	}
}

// MonthlySales buckets revenue and order counts of non-cancelled orders per month.
func (s *Service) MonthlySales() aggregate.TimeSeries {
	return aggregate.TimeSeriesByMonth(s.sales(),
		func(o models.Order) time.Time { return o.OrderDate }, s.loc,
		aggregate.Series[models.Order]{Name: SeriesRevenue, Value: func(o models.Order) float64 { return o.TotalAmount }},
		aggregate.Series[models.Order]{Name: SeriesOrders, Value: func(models.Order) float64 { return 1 }},
	)
}

// ProductSales is one entry of the top selling products ranking.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopProducts ranks products by revenue over the lines of non-cancelled
// orders. A non-positive limit keeps every product.
func (s *Service) TopProducts(limit int) []ProductSales {
	revenue := make(map[string]float64)
	quantity := make(map[string]int)
	for _, order := range s.sales() {
		for _, line := range order.Items {
			revenue[line.ProductName] += line.TotalPrice
			quantity[line.ProductName] += line.Quantity
		}
	}

	ranked := aggregate.Top(revenue, limit)
	out := make([]ProductSales, len(ranked))
	for i, r := range ranked {
		out[i] = ProductSales{Name: r.Key, Quantity: quantity[r.Key], Revenue: r.Value}
	}
	return out
}

func (s *Service) sales() []models.Order {
	orders := s.inv.Orders.Snapshot()
	return slices.DeleteFunc(orders, func(o models.Order) bool {
		return strings.EqualFold(o.Status, models.OrderCancelled)
	})
}

// StockOutsByReason sums stock-out quantities per reason, listing every
// known reason.
func (s *Service) StockOutsByReason() map[string]float64 {
	totals := aggregate.TotalsByCategory(s.inv.StockOuts.Snapshot(),
		func(r models.StockOutRecord) string { return r.Reason },
		func(r models.StockOutRecord) float64 { return float64(r.Quantity) })
	return aggregate.Backfill(totals, []string{
		models.ReasonSale, models.ReasonDamaged, models.ReasonInternalUse, models.ReasonReturn, models.ReasonExpired,
	})
}

// LowestStock returns the n items with the smallest quantity.
func (s *Service) LowestStock(n int) []models.Item {
	items := s.inv.Items.Snapshot()
	slices.SortStableFunc(items, func(a, b models.Item) int { return a.Quantity - b.Quantity })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// LowStockAlerts lists items at or below their reorder level or the
// configured low stock threshold, lowest quantity first.
func (s *Service) LowStockAlerts() []models.Item {
	items := s.LowestStock(0)
	return slices.DeleteFunc(items, func(i models.Item) bool {
		return !i.NeedsReorder() && i.Quantity > s.settings.LowStockThreshold
	})
}

// Snapshot captures the current figures.
func (s *Service) Snapshot(now time.Time) models.ReportSnapshot {
	dash := s.Dashboard()
	moves := s.MovementStats()

	sales := decimal.Zero
	open := 0
	for _, order := range s.sales() {
		sales = sales.Add(decimal.NewFromFloat(order.TotalAmount))
		if strings.EqualFold(order.Status, models.OrderPending) || strings.EqualFold(order.Status, models.OrderProcessing) {
			open++
		}
	}

	return models.ReportSnapshot{
		GeneratedAt:    now,
		TotalItems:     dash.TotalItems,
		TotalStock:     dash.TotalStock,
		InventoryValue: dash.InventoryValue,
		LowStockCount:  dash.LowStockCount,
		NewStock:       moves.TotalNewStock,
		StockOut:       moves.TotalStockOut,
		Adjustments:    moves.TotalAdjustments,
		Transfers:      moves.TotalTransfers,
		SalesAmount:    sales.Round(2).InexactFloat64(),
		OpenOrders:     open,
	}
}

// Summary renders the snapshot as a short text report.
func (s *Service) Summary(now time.Time) string {
	snap := s.Snapshot(now)

	var b strings.Builder
	fmt.Fprintf(&b, "%s inventory report (%s)\n", s.settings.CompanyName, now.In(s.loc).Format(dateLayout))
	fmt.Fprintf(&b, "Items: %d, units in stock: %d, value: %s\n", snap.TotalItems, snap.TotalStock, s.Money(snap.InventoryValue))
	fmt.Fprintf(&b, "Low stock: %d item(s)\n", snap.LowStockCount)
	fmt.Fprintf(&b, "Movements: %.0f in, %.0f out, %.0f adjusted, %d transfer(s)\n", snap.NewStock, snap.StockOut, snap.Adjustments, snap.Transfers)
	fmt.Fprintf(&b, "Sales: %s, open orders: %d", s.Money(snap.SalesAmount), snap.OpenOrders)

	if top := s.TopProducts(1); len(top) > 0 {
		fmt.Fprintf(&b, "\nTop product: %s (%s)", top[0].Name, s.Money(top[0].Revenue))
	}
	return b.String()
}

// Money formats an amount with the configured currency symbol and two decimals.
func (s *Service) Money(amount float64) string {
	return s.settings.CurrencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// Export saves a snapshot to every registered sink. A failing sink does not
// stop the others; their errors are joined.
func (s *Service) Export(ctx context.Context, now time.Time) (models.ReportSnapshot, error) {
	snap := s.Snapshot(now)
	if len(s.sinks) == 0 {
		s.logger.Info("no report sinks configured, skipping export")
		return snap, nil
	}

	names := make([]string, 0, len(s.sinks))
	for name := range s.sinks {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if err := s.sinks[name].SaveSnapshot(ctx, snap); err != nil {
			s.logger.Error("report export failed", zap.String("sink", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("export to %s: %w", name, err))
			continue
		}
		s.logger.Info("report exported", zap.String("sink", name))
	}
	return snap, errors.Join(errs...)
}
