package aggregate

import (
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// CustomerStats is a customer enriched with order totals.
type CustomerStats struct {
	models.Customer
	TotalOrders     int        `json:"total_orders"`
	TotalSpent      float64    `json:"total_spent"`
	LastOrderDate   *time.Time `json:"last_order_date"`
	LastOrderStatus string     `json:"last_order_status,omitempty"`
}

// CustomerOrderStats joins customers with the orders that reference them.
// Customers appear in their store order; customers referenced only by orders
// follow in first-order order, built from the order's customer snapshot.
// Orders without a customer id are ignored.
func CustomerOrderStats(customers []models.Customer, orders []models.Order) []CustomerStats {
	index := make(map[string]int, len(customers))
	out := make([]CustomerStats, 0, len(customers))
	for _, c := range customers {
		index[c.ID] = len(out)
		out = append(out, CustomerStats{Customer: c})
	}

	for _, order := range orders {
		if order.CustomerID == "" {
			continue
		}
		i, ok := index[order.CustomerID]
		if !ok {
			i = len(out)
			index[order.CustomerID] = i
			out = append(out, CustomerStats{Customer: models.Customer{
				Meta:  models.Meta{ID: order.CustomerID},
				Name:  order.CustomerName,
				Email: order.CustomerEmail,
			}})
		}

		stats := &out[i]
		stats.TotalOrders++
		stats.TotalSpent += order.TotalAmount
		if stats.LastOrderDate == nil || order.OrderDate.After(*stats.LastOrderDate) {
			at := order.OrderDate
			stats.LastOrderDate = &at
			stats.LastOrderStatus = order.Status
		}
	}
	return out
}
