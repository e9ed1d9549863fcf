package models

import "time"

// Stock level buckets used by the inventory stock filter.
const (
	StockIn  = "in-stock"
	StockLow = "low-stock"
	StockOut = "out-of-stock"
)

// Supplier statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Category groups inventory items.
type Category struct {
	Meta        `bson:",inline" yaml:",inline"`
	Name        string `json:"name" bson:"name" yaml:"name" validate:"required"`
	Description string `json:"description" bson:"description" yaml:"description"`
}

func (c Category) WithID(id string) Category { c.ID = id; return c }

func (c Category) Stamped(created, updated time.Time) Category {
	c.Meta = c.Meta.stamped(created, updated)
	return c
}

// Validate checks the required fields.
func (c Category) Validate() error { return check(c) }

// Supplier is a vendor that inventory is purchased from.
type Supplier struct {
	Meta          `bson:",inline" yaml:",inline"`
	Name          string `json:"name" bson:"name" yaml:"name" validate:"required"`
	ContactPerson string `json:"contact_person" bson:"contact_person" yaml:"contact_person"`
	Email         string `json:"email" bson:"email" yaml:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" bson:"phone" yaml:"phone"`
	Address       string `json:"address" bson:"address" yaml:"address"`
	Status        string `json:"status" bson:"status" yaml:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (s Supplier) WithID(id string) Supplier { s.ID = id; return s }

func (s Supplier) Stamped(created, updated time.Time) Supplier {
	s.Meta = s.Meta.stamped(created, updated)
	return s
}

// Validate checks the required fields and the status enumeration.
func (s Supplier) Validate() error { return check(s) }

// Item is a stocked inventory product.
type Item struct {
	Meta            `bson:",inline" yaml:",inline"`
	Name            string  `json:"name" bson:"name" yaml:"name" validate:"required"`
	Description     string  `json:"description" bson:"description" yaml:"description"`
	SKU             string  `json:"sku" bson:"sku" yaml:"sku" validate:"required"`
	Barcode         string  `json:"barcode" bson:"barcode" yaml:"barcode"`
	CategoryID      string  `json:"category_id" bson:"category_id" yaml:"category_id"`
	CategoryName    string  `json:"category_name" bson:"category_name" yaml:"category_name"`
	SupplierID      string  `json:"supplier_id" bson:"supplier_id" yaml:"supplier_id"`
	SupplierName    string  `json:"supplier_name" bson:"supplier_name" yaml:"supplier_name"`
	Quantity        int     `json:"quantity" bson:"quantity" yaml:"quantity" validate:"gte=0"`
	Unit            string  `json:"unit" bson:"unit" yaml:"unit"`
	UnitCost        float64 `json:"unit_cost" bson:"unit_cost" yaml:"unit_cost" validate:"gte=0"`
	SellingPrice    float64 `json:"selling_price" bson:"selling_price" yaml:"selling_price" validate:"gte=0"`
	ReorderLevel    int     `json:"reorder_level" bson:"reorder_level" yaml:"reorder_level" validate:"gte=0"`
	ReorderQuantity int     `json:"reorder_quantity" bson:"reorder_quantity" yaml:"reorder_quantity" validate:"gte=0"`
	Location        string  `json:"location" bson:"location" yaml:"location"`
	ImageURL        string  `json:"image_url" bson:"image_url" yaml:"image_url"`
}

func (i Item) WithID(id string) Item { i.ID = id; return i }

func (i Item) Stamped(created, updated time.Time) Item {
	i.Meta = i.Meta.stamped(created, updated)
	return i
}

// Validate checks required fields and rejects negative quantities or prices.
func (i Item) Validate() error { return check(i) }

// StockLevel classifies the item as in-stock, low-stock or out-of-stock.
// Low stock means a positive quantity at or below the reorder level.
func (i Item) StockLevel() string {
	switch {
	case i.Quantity <= 0:
		return StockOut
	case i.Quantity <= i.ReorderLevel:
		return StockLow
	default:
		return StockIn
	}
}

// NeedsReorder reports whether the quantity is at or below the reorder level,
// including items that are already out of stock.
func (i Item) NeedsReorder() bool {
	return i.Quantity <= i.ReorderLevel
}

// StockValue is the on-hand quantity valued at unit cost.
func (i Item) StockValue() float64 {
	return float64(i.Quantity) * i.UnitCost
}
