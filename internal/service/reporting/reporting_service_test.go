package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

var reportTime = time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC)

func newReporting(t *testing.T, threshold int) *Service {
	t.Helper()
	inv := inventory.NewService(inventory.SeedSources(), inventory.Options{})
	_, err := inv.Load(context.Background())
	require.NoError(t, err)

	settings := config.Settings{CompanyName: "Acme", CurrencySymbol: "$", LowStockThreshold: threshold}
	return NewService(inv, settings, time.UTC, nil)
}

func TestDashboard(t *testing.T) {
	stats := newReporting(t, 5).Dashboard()

	assert.Equal(t, 9, stats.TotalItems)
	assert.Equal(t, 319, stats.TotalStock)
	assert.InDelta(t, 14308.95, stats.InventoryValue, 1e-9)
	assert.Equal(t, 3, stats.LowStockCount)
	assert.Equal(t, map[string]int{"Electronics": 299, "Furniture": 20, "Office Supplies": 0}, stats.QuantityByCategory)
}

func TestMovementStats(t *testing.T) {
	stats := newReporting(t, 5).MovementStats()

	assert.Equal(t, MovementStats{
		TotalNewStock:    117,
		TotalStockOut:    43,
		TotalTransfers:   2,
		TotalAdjustments: 2,
	}, stats)
}

func TestMonthlyMovements(t *testing.T) {
	series := newReporting(t, 5).MonthlyMovements()

	assert.Equal(t, []string{"Mar 2023", "Apr 2023", "May 2023", "Jun 2023", "Jul 2023", "Aug 2023"}, series.Labels())
	assert.Equal(t, []float64{50, 12, 0, 0, 50, 5}, series.Values(SeriesStockIn))
	assert.Equal(t, []float64{0, 0, 25, 10, 0, 8}, series.Values(SeriesStockOut))
}

func TestMonthlySalesSkipsCancelledOrders(t *testing.T) {
	series := newReporting(t, 5).MonthlySales()

	assert.Equal(t, []string{"Jul 2023", "Aug 2023"}, series.Labels())
	revenue := series.Values(SeriesRevenue)
	assert.InDelta(t, 349.97, revenue[0], 1e-9)
	assert.InDelta(t, 309.92, revenue[1], 1e-9)
	assert.Equal(t, []float64{2, 2}, series.Values(SeriesOrders))
}

func TestTopProducts(t *testing.T) {
	top := newReporting(t, 5).TopProducts(3)

	require.Len(t, top, 3)
	assert.Equal(t, `Monitor 24"`, top[0].Name)
	assert.Equal(t, "Wireless Headphones", top[1].Name)
	assert.Equal(t, "Phone Charger", top[2].Name)
	assert.Equal(t, 5, top[2].Quantity)
	assert.InDelta(t, 99.95, top[2].Revenue, 1e-9)
}

func TestStockOutsByReason(t *testing.T) {
	got := newReporting(t, 5).StockOutsByReason()

	assert.Equal(t, map[string]float64{
		models.ReasonSale:        75,
		models.ReasonDamaged:     2,
		models.ReasonInternalUse: 15,
		models.ReasonReturn:      4,
		models.ReasonExpired:     0,
	}, got)
}

func TestLowStockAlertsUseThreshold(t *testing.T) {
	ids := func(items []models.Item) []string {
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	assert.Equal(t, []string{"item-7", "item-6", "item-3"}, ids(newReporting(t, 5).LowStockAlerts()))
	assert.Equal(t, []string{"item-7", "item-6", "item-3", "item-4", "item-5"}, ids(newReporting(t, 20).LowStockAlerts()))
}

func TestLowestStock(t *testing.T) {
	got := newReporting(t, 5).LowestStock(2)

	require.Len(t, got, 2)
	assert.Equal(t, "item-7", got[0].ID)
	assert.Equal(t, "item-6", got[1].ID)
}

func TestSnapshotAndSummary(t *testing.T) {
	svc := newReporting(t, 5)

	snap := svc.Snapshot(reportTime)
	assert.Equal(t, reportTime, snap.GeneratedAt)
	assert.InDelta(t, 659.89, snap.SalesAmount, 1e-9)
	assert.Equal(t, 2, snap.OpenOrders)

	summary := svc.Summary(reportTime)
	assert.Contains(t, summary, "Acme inventory report (2023-08-20)")
	assert.Contains(t, summary, "value: $14308.95")
	assert.Contains(t, summary, "Sales: $659.89, open orders: 2")
	assert.Contains(t, summary, `Top product: Monitor 24" ($249.99)`)
}

type fakeSink struct {
	saved []models.ReportSnapshot
	err   error
}

func (f *fakeSink) SaveSnapshot(_ context.Context, snap models.ReportSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func TestExportContinuesPastFailingSink(t *testing.T) {
	svc := newReporting(t, 5)
	good := &fakeSink{}
	bad := &fakeSink{err: errors.New("quota exceeded")}
	svc.AddSink("mongodb", good)
	svc.AddSink("sheets", bad)

	snap, err := svc.Export(context.Background(), reportTime)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "export to sheets: quota exceeded")
	require.Len(t, good.saved, 1)
	assert.Equal(t, snap, good.saved[0])
}

func TestExportWithoutSinks(t *testing.T) {
	snap, err := newReporting(t, 5).Export(context.Background(), reportTime)

	require.NoError(t, err)
	assert.Equal(t, 9, snap.TotalItems)
}
