// Package seed serves the fixed demo records used when no remote backend is
// configured or reachable.
package seed

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

//go:embed fixtures/*.yaml
var fixtures embed.FS

// Load decodes the named fixture file.
func Load[T any](name string) ([]T, error) {
	raw, err := fixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}

	var records []T
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return records, nil
}

func mustLoad[T any](name string) []T {
	records, err := Load[T](name)
	if err != nil {
		panic(err)
	}
	return records
}

func Categories() []models.Category { return mustLoad[models.Category]("categories.yaml") }

func Suppliers() []models.Supplier { return mustLoad[models.Supplier]("suppliers.yaml") }

func Items() []models.Item { return mustLoad[models.Item]("items.yaml") }

func PurchaseOrders() []models.PurchaseOrder {
	return mustLoad[models.PurchaseOrder]("purchase_orders.yaml")
}

func StockOuts() []models.StockOutRecord { return mustLoad[models.StockOutRecord]("stock_outs.yaml") }

func Orders() []models.Order { return mustLoad[models.Order]("orders.yaml") }

func Movements() []models.Movement { return mustLoad[models.Movement]("movements.yaml") }

func Customers() []models.Customer { return mustLoad[models.Customer]("customers.yaml") }

func Users() []models.User { return mustLoad[models.User]("users.yaml") }

// LinkItems points the seed items at the given categories and suppliers.
// Items are matched by category and supplier name; unmatched items fall back
// to the first category or supplier, and keep their references when the
// lists are empty. Item ids are cleared so the store seeding the backend
// stamps fresh prefixed ids on them before insert.
func LinkItems(items []models.Item, categories []models.Category, suppliers []models.Supplier) []models.Item {
	linked := make([]models.Item, len(items))
	for i, item := range items {
		item.ID = ""
		if len(categories) > 0 {
			c := categories[0]
			for _, candidate := range categories {
				if strings.EqualFold(candidate.Name, item.CategoryName) {
					c = candidate
					break
				}
			}
			item.CategoryID, item.CategoryName = c.ID, c.Name
		}
		if len(suppliers) > 0 {
			s := suppliers[0]
			for _, candidate := range suppliers {
				if strings.EqualFold(candidate.Name, item.SupplierName) {
					s = candidate
					break
				}
			}
			item.SupplierID, item.SupplierName = s.ID, s.Name
		}
		linked[i] = item
	}
	return linked
}
