package models

import "time"

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	Meta                 `bson:",inline" yaml:",inline"`
	PONumber             string              `json:"po_number" bson:"po_number" yaml:"po_number" validate:"required"`
	SupplierID           string              `json:"supplier_id" bson:"supplier_id" yaml:"supplier_id"`
	SupplierName         string              `json:"supplier_name" bson:"supplier_name" yaml:"supplier_name"`
	OrderDate            time.Time           `json:"order_date" bson:"order_date" yaml:"order_date"`
	ExpectedDeliveryDate time.Time           `json:"expected_delivery_date" bson:"expected_delivery_date" yaml:"expected_delivery_date"`
	Status               string              `json:"status" bson:"status" yaml:"status" validate:"omitempty,oneof=draft ordered partially_received received cancelled"`
	PaymentStatus        string              `json:"payment_status" bson:"payment_status" yaml:"payment_status" validate:"omitempty,oneof=pending partial paid"`
	Items                []PurchaseOrderLine `json:"items" bson:"items" yaml:"items" validate:"dive"`
	TotalAmount          float64             `json:"total_amount" bson:"total_amount" yaml:"total_amount"`
	Notes                string              `json:"notes,omitempty" bson:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedBy            string              `json:"created_by" bson:"created_by" yaml:"created_by"`
}

// PurchaseOrderLine is one item line of a purchase order.
type PurchaseOrderLine struct {
	ID               string  `json:"id" bson:"id" yaml:"id"`
	ItemID           string  `json:"item_id" bson:"item_id" yaml:"item_id"`
	ItemName         string  `json:"item_name" bson:"item_name" yaml:"item_name" validate:"required"`
	Quantity         int     `json:"quantity" bson:"quantity" yaml:"quantity" validate:"gte=0"`
	UnitPrice        float64 `json:"unit_price" bson:"unit_price" yaml:"unit_price" validate:"gte=0"`
	TotalPrice       float64 `json:"total_price" bson:"total_price" yaml:"total_price"`
	ReceivedQuantity int     `json:"received_quantity" bson:"received_quantity" yaml:"received_quantity" validate:"gte=0"`
}

func (p PurchaseOrder) WithID(id string) PurchaseOrder { p.ID = id; return p }

func (p PurchaseOrder) Stamped(created, updated time.Time) PurchaseOrder {
	p.Meta = p.Meta.stamped(created, updated)
	return p
}

// Validate checks the purchase order header and lines.
func (p PurchaseOrder) Validate() error { return check(p) }

// Derive recomputes line totals and the purchase order total.
func (p PurchaseOrder) Derive() PurchaseOrder {
	lines := make([]PurchaseOrderLine, len(p.Items))
	total := 0.0
	for i, line := range p.Items {
		line.TotalPrice = float64(line.Quantity) * line.UnitPrice
		total += line.TotalPrice
		lines[i] = line
	}
	p.Items = lines
	p.TotalAmount = total
	return p
}
