package models

import "time"

// Stock-out reasons.
const (
	ReasonSale        = "Sale"
	ReasonDamaged     = "Damaged"
	ReasonInternalUse = "Internal Use"
	ReasonReturn      = "Return"
	ReasonExpired     = "Expired"
)

// StockOutRecord captures stock leaving the warehouse outside of a transfer.
type StockOutRecord struct {
	Meta           `bson:",inline" yaml:",inline"`
	Date           time.Time `json:"date" bson:"date" yaml:"date"`
	Product        string    `json:"product" bson:"product" yaml:"product" validate:"required"`
	ProductID      string    `json:"product_id" bson:"product_id" yaml:"product_id"`
	Quantity       int       `json:"quantity" bson:"quantity" yaml:"quantity" validate:"gte=0"`
	Reason         string    `json:"reason" bson:"reason" yaml:"reason" validate:"omitempty,oneof=Sale Damaged 'Internal Use' Return Expired"`
	RequestedBy    string    `json:"requested_by" bson:"requested_by" yaml:"requested_by"`
	Customer       *Ref      `json:"customer,omitempty" bson:"customer,omitempty" yaml:"customer,omitempty"`
	UnitPrice      float64   `json:"unit_price" bson:"unit_price" yaml:"unit_price" validate:"gte=0"`
	TotalPrice     float64   `json:"total_price" bson:"total_price" yaml:"total_price"`
	OrderReference string    `json:"order_reference,omitempty" bson:"order_reference,omitempty" yaml:"order_reference,omitempty"`
	Destination    string    `json:"destination,omitempty" bson:"destination,omitempty" yaml:"destination,omitempty"`
	Notes          string    `json:"notes,omitempty" bson:"notes,omitempty" yaml:"notes,omitempty"`
}

func (s StockOutRecord) WithID(id string) StockOutRecord { s.ID = id; return s }

func (s StockOutRecord) Stamped(created, updated time.Time) StockOutRecord {
	s.Meta = s.Meta.stamped(created, updated)
	return s
}

// Validate checks the required fields and the reason enumeration.
func (s StockOutRecord) Validate() error { return check(s) }

// Derive recomputes the total price from quantity and unit price.
func (s StockOutRecord) Derive() StockOutRecord {
	s.TotalPrice = float64(s.Quantity) * s.UnitPrice
	return s
}
