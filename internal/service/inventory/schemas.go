package inventory

import (
	"time"

	"github.com/mamadbah2/stockroom/internal/aggregate"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/query"
)

// Status values accepted by the list filters.
var (
	orderStatuses    = []string{models.OrderPending, models.OrderProcessing, models.OrderCompleted, models.OrderCancelled}
	purchaseStatuses = []string{"draft", "ordered", "partially_received", "received", "cancelled"}
	paymentStatuses  = []string{"pending", "partial", "paid"}
	activeStatuses   = []string{models.StatusActive, models.StatusInactive}
	roles            = []string{models.RoleAdmin, models.RoleManager, models.RoleStaff}
	stockOutReasons  = []string{models.ReasonSale, models.ReasonDamaged, models.ReasonInternalUse, models.ReasonReturn, models.ReasonExpired}
)

// ItemSchema searches items by name, SKU, description and barcode.
var ItemSchema = query.Schema[models.Item]{
	Search: func(i models.Item) []string { return []string{i.Name, i.SKU, i.Description, i.Barcode} },
	Filters: map[string]query.Predicate[models.Item]{
		"category": query.Equals(func(i models.Item) string { return i.CategoryID }),
		"supplier": query.Equals(func(i models.Item) string { return i.SupplierID }),
		"stock": query.Cases(map[string]func(models.Item) bool{
			models.StockIn:  func(i models.Item) bool { return i.Quantity > 0 },
			models.StockLow: func(i models.Item) bool { return i.StockLevel() == models.StockLow },
			models.StockOut: func(i models.Item) bool { return i.Quantity == 0 },
		}),
	},
	Columns: map[string]query.Column[models.Item]{
		"name":     func(i models.Item) query.Value { return query.FoldedText(i.Name) },
		"quantity": func(i models.Item) query.Value { return query.Int(i.Quantity) },
		"price":    func(i models.Item) query.Value { return query.Number(i.SellingPrice) },
		"category": func(i models.Item) query.Value { return query.FoldedText(i.CategoryName) },
		"supplier": func(i models.Item) query.Value { return query.FoldedText(i.SupplierName) },
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}

// CategorySchema searches categories by name and description.
var CategorySchema = query.Schema[models.Category]{
	Search: func(c models.Category) []string { return []string{c.Name, c.Description} },
	Columns: map[string]query.Column[models.Category]{
		"name":       func(c models.Category) query.Value { return query.FoldedText(c.Name) },
		"created_at": func(c models.Category) query.Value { return query.Time(c.CreatedAt) },
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}

var SupplierSchema = query.Schema[models.Supplier]{
	Search: func(s models.Supplier) []string { return []string{s.Name, s.ContactPerson, s.Email, s.Phone} },
	Filters: map[string]query.Predicate[models.Supplier]{
		"status": query.OneOf(activeStatuses, func(s models.Supplier) string { return s.Status }),
	},
	Columns: map[string]query.Column[models.Supplier]{
		"name":    func(s models.Supplier) query.Value { return query.FoldedText(s.Name) },
		"contact": func(s models.Supplier) query.Value { return query.FoldedText(s.ContactPerson) },
		"status":  func(s models.Supplier) query.Value { return query.Text(s.Status) },
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}

var PurchaseOrderSchema = query.Schema[models.PurchaseOrder]{
	Search: func(p models.PurchaseOrder) []string { return []string{p.PONumber, p.SupplierName, p.Notes} },
	Filters: map[string]query.Predicate[models.PurchaseOrder]{
		"status":   query.OneOf(purchaseStatuses, func(p models.PurchaseOrder) string { return p.Status }),
		"payment":  query.OneOf(paymentStatuses, func(p models.PurchaseOrder) string { return p.PaymentStatus }),
		"supplier": query.Equals(func(p models.PurchaseOrder) string { return p.SupplierID }),
		"range":    query.DateRange(func(p models.PurchaseOrder) time.Time { return p.OrderDate }),
	},
	Columns: map[string]query.Column[models.PurchaseOrder]{
		"po_number": func(p models.PurchaseOrder) query.Value { return query.Text(p.PONumber) },
		"supplier":  func(p models.PurchaseOrder) query.Value { return query.FoldedText(p.SupplierName) },
		"date":      func(p models.PurchaseOrder) query.Value { return query.Time(p.OrderDate) },
		"amount":    func(p models.PurchaseOrder) query.Value { return query.Number(p.TotalAmount) },
		"status":    func(p models.PurchaseOrder) query.Value { return query.Text(p.Status) },
	},
	DefaultSort: query.Sort{Column: "date", Direction: query.Desc},
}

var StockOutSchema = query.Schema[models.StockOutRecord]{
	Search: func(s models.StockOutRecord) []string {
		return []string{s.Product, s.RequestedBy, s.OrderReference, s.Customer.DisplayName("")}
	},
	Filters: map[string]query.Predicate[models.StockOutRecord]{
		"reason":  query.OneOf(stockOutReasons, func(s models.StockOutRecord) string { return s.Reason }),
		"product": query.Equals(func(s models.StockOutRecord) string { return s.ProductID }),
		"range":   query.DateRange(func(s models.StockOutRecord) time.Time { return s.Date }),
	},
	Columns: map[string]query.Column[models.StockOutRecord]{
		"date":     func(s models.StockOutRecord) query.Value { return query.Time(s.Date) },
		"product":  func(s models.StockOutRecord) query.Value { return query.FoldedText(s.Product) },
		"quantity": func(s models.StockOutRecord) query.Value { return query.Int(s.Quantity) },
		"reason":   func(s models.StockOutRecord) query.Value { return query.Text(s.Reason) },
		"total":    func(s models.StockOutRecord) query.Value { return query.Number(s.TotalPrice) },
	},
	DefaultSort: query.Sort{Column: "date", Direction: query.Desc},
}

// OrderSchema matches order statuses ignoring case.
var OrderSchema = query.Schema[models.Order]{
	Search: func(o models.Order) []string { return []string{o.OrderNumber, o.CustomerName, o.CustomerEmail} },
	Filters: map[string]query.Predicate[models.Order]{
		"status":   query.OneOfFold(orderStatuses, func(o models.Order) string { return o.Status }),
		"customer": query.Equals(func(o models.Order) string { return o.CustomerID }),
		"range":    query.DateRange(func(o models.Order) time.Time { return o.OrderDate }),
	},
	Columns:     orderColumns,
	DefaultSort: query.Sort{Column: "date", Direction: query.Desc},
}

var orderColumns = map[string]query.Column[models.Order]{
	"order_number": orderNumber,
	"id":           orderNumber,
	"date":         func(o models.Order) query.Value { return query.Time(o.OrderDate) },
	"customer":     func(o models.Order) query.Value { return query.FoldedText(o.CustomerName) },
	"status":       func(o models.Order) query.Value { return query.FoldedText(o.Status) },
	"amount":       func(o models.Order) query.Value { return query.Number(o.TotalAmount) },
}

func orderNumber(o models.Order) query.Value { return query.Text(o.OrderNumber) }

// MovementSchema's warehouse filter matches either end of a movement.
var MovementSchema = query.Schema[models.Movement]{
	Search: func(m models.Movement) []string {
		return []string{m.ProductName, m.BatchNumber, m.InitiatedBy, m.ReferenceID, m.OrderNumber}
	},
	Filters: map[string]query.Predicate[models.Movement]{
		"product": query.Equals(func(m models.Movement) string { return m.ProductID }),
		"type":    query.OneOf(models.MovementTypes, func(m models.Movement) string { return m.MovementType }),
		"range":   query.DateRange(func(m models.Movement) time.Time { return m.Date }),
		"warehouse": func(value string, _ time.Time) (func(models.Movement) bool, error) {
			return func(m models.Movement) bool {
				return m.FromWarehouse == value || m.ToWarehouse == value
			}, nil
		},
	},
	Columns: map[string]query.Column[models.Movement]{
		"date":          func(m models.Movement) query.Value { return query.Time(m.Date) },
		"product_name":  func(m models.Movement) query.Value { return query.FoldedText(m.ProductName) },
		"quantity":      func(m models.Movement) query.Value { return query.Int(m.Quantity) },
		"movement_type": func(m models.Movement) query.Value { return query.Text(m.MovementType) },
		"initiated_by":  func(m models.Movement) query.Value { return query.FoldedText(m.InitiatedBy) },
	},
	DefaultSort: query.Sort{Column: "date", Direction: query.Desc},
}

var CustomerSchema = query.Schema[models.Customer]{
	Search: func(c models.Customer) []string { return []string{c.Name, c.Email, c.Phone} },
	Columns: map[string]query.Column[models.Customer]{
		"name":  func(c models.Customer) query.Value { return query.FoldedText(c.Name) },
		"email": func(c models.Customer) query.Value { return query.FoldedText(c.Email) },
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}

// CustomerStatsSchema sorts customers by their derived order totals.
var CustomerStatsSchema = query.Schema[aggregate.CustomerStats]{
	Search: func(c aggregate.CustomerStats) []string { return []string{c.Name, c.Email, c.Phone} },
	Columns: map[string]query.Column[aggregate.CustomerStats]{
		"name":         func(c aggregate.CustomerStats) query.Value { return query.FoldedText(c.Name) },
		"email":        func(c aggregate.CustomerStats) query.Value { return query.FoldedText(c.Email) },
		"total_orders": func(c aggregate.CustomerStats) query.Value { return query.Int(c.TotalOrders) },
		"total_spent":  func(c aggregate.CustomerStats) query.Value { return query.Number(c.TotalSpent) },
		"last_order_date": func(c aggregate.CustomerStats) query.Value {
			if c.LastOrderDate == nil {
				return query.Missing
			}
			return query.Time(*c.LastOrderDate)
		},
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}

var UserSchema = query.Schema[models.User]{
	Search: func(u models.User) []string { return []string{u.Name, u.Email} },
	Filters: map[string]query.Predicate[models.User]{
		"role":   query.OneOf(roles, func(u models.User) string { return u.Role }),
		"status": query.OneOf(activeStatuses, func(u models.User) string { return u.Status }),
	},
	Columns: map[string]query.Column[models.User]{
		"name":  func(u models.User) query.Value { return query.FoldedText(u.Name) },
		"email": func(u models.User) query.Value { return query.FoldedText(u.Email) },
		"role":  func(u models.User) query.Value { return query.Text(u.Role) },
		"last_active": func(u models.User) query.Value {
			if u.LastActive == nil {
				return query.Missing
			}
			return query.Time(*u.LastActive)
		},
	},
	DefaultSort: query.Sort{Column: "name", Direction: query.Asc},
}
