package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func movementType(m models.Movement) string { return m.MovementType }
func movementQty(m models.Movement) float64 { return float64(m.Quantity) }

func TestTotalsByCategory(t *testing.T) {
	movements := []models.Movement{
		{MovementType: models.MovementNewStock, Quantity: 50},
		{MovementType: models.MovementStockOut, Quantity: 30},
		{MovementType: models.MovementNewStock, Quantity: 10},
	}

	totals := TotalsByCategory(movements, movementType, movementQty)
	assert.Equal(t, map[string]float64{"New Stock": 60, "Stock Out": 30}, totals)
	assert.NotContains(t, totals, models.MovementTransfer, "absent categories are not zero-filled")

	filled := Backfill(totals, models.MovementTypes)
	assert.Equal(t, 0.0, filled[models.MovementTransfer])
	assert.Equal(t, 60.0, filled[models.MovementNewStock])
	assert.Len(t, totals, 2, "backfill leaves its input untouched")
}

func TestCountByCategory(t *testing.T) {
	movements := []models.Movement{
		{MovementType: models.MovementTransfer},
		{MovementType: models.MovementTransfer},
		{MovementType: models.MovementAdjustment},
	}
	assert.Equal(t, map[string]int{"Transfer": 2, "Adjustment": 1}, CountByCategory(movements, movementType))
}

func TestTimeSeriesByMonthOrdersNumerically(t *testing.T) {
	at := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
	movements := []models.Movement{
		{MovementType: models.MovementNewStock, Quantity: 5, Date: at(2023, time.October, 2)},
		{MovementType: models.MovementStockOut, Quantity: 3, Date: at(2023, time.March, 15)},
		{MovementType: models.MovementNewStock, Quantity: 7, Date: at(2023, time.March, 1)},
		{MovementType: models.MovementTransfer, Quantity: 9, Date: at(2022, time.December, 31)},
		{MovementType: models.MovementNewStock, Quantity: 100},
	}

	series := TimeSeriesByMonth(movements, func(m models.Movement) time.Time { return m.Date }, time.UTC,
		Series[models.Movement]{Name: "stock_in", Value: func(m models.Movement) float64 {
			if m.MovementType == models.MovementNewStock {
				return float64(m.Quantity)
			}
			return 0
		}},
		Series[models.Movement]{Name: "stock_out", Value: func(m models.Movement) float64 {
			if m.MovementType == models.MovementStockOut {
				return float64(m.Quantity)
			}
			return 0
		}},
	)

	require.Len(t, series.Buckets, 3)
	assert.Equal(t, "2022-12", series.Buckets[0].Key)
	assert.Equal(t, "2023-3", series.Buckets[1].Key)
	assert.Equal(t, "2023-10", series.Buckets[2].Key)
	assert.Equal(t, []string{"Dec 2022", "Mar 2023", "Oct 2023"}, series.Labels())
	assert.Equal(t, []float64{0, 7, 5}, series.Values("stock_in"))
	assert.Equal(t, []float64{0, 3, 0}, series.Values("stock_out"))
}

func TestTimeSeriesByMonthUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	movements := []models.Movement{{Quantity: 1, Date: time.Date(2023, time.January, 31, 20, 0, 0, 0, time.UTC)}}

	series := TimeSeriesByMonth(movements, func(m models.Movement) time.Time { return m.Date }, tokyo,
		Series[models.Movement]{Name: "qty", Value: movementQty})

	require.Len(t, series.Buckets, 1)
	assert.Equal(t, "2023-2", series.Buckets[0].Key)
	assert.Equal(t, "Feb 2023", series.Buckets[0].Label)
}

func TestTop(t *testing.T) {
	ranked := Top(map[string]float64{"mouse": 3, "keyboard": 5, "cable": 3, "hub": 1}, 3)
	assert.Equal(t, []Ranked{{"keyboard", 5}, {"cable", 3}, {"mouse", 3}}, ranked)
	assert.Len(t, Top(map[string]float64{"a": 1, "b": 2}, 0), 2)
}

func TestCustomerOrderStats(t *testing.T) {
	customers := []models.Customer{
		{Meta: models.Meta{ID: "cust-1"}, Name: "John Smith"},
		{Meta: models.Meta{ID: "cust-9"}, Name: "No Orders"},
	}
	orders := []models.Order{
		{CustomerID: "cust-1", TotalAmount: 10, Status: models.OrderCompleted, OrderDate: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "cust-1", TotalAmount: 5, Status: models.OrderPending, OrderDate: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "cust-1", TotalAmount: 1, Status: models.OrderCancelled, OrderDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{CustomerID: "cust-gone", CustomerName: "Deleted Customer", TotalAmount: 7, Status: models.OrderProcessing},
		{TotalAmount: 99},
	}

	stats := CustomerOrderStats(customers, orders)
	require.Len(t, stats, 3)

	assert.Equal(t, 3, stats[0].TotalOrders)
	assert.InDelta(t, 16.0, stats[0].TotalSpent, 1e-9)
	require.NotNil(t, stats[0].LastOrderDate)
	assert.Equal(t, time.August, stats[0].LastOrderDate.Month())
	assert.Equal(t, models.OrderPending, stats[0].LastOrderStatus)

	assert.Equal(t, 0, stats[1].TotalOrders)
	assert.Nil(t, stats[1].LastOrderDate)

	assert.Equal(t, "cust-gone", stats[2].ID)
	assert.Equal(t, "Deleted Customer", stats[2].Name)
}
