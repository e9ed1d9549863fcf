package models

import "time"

// Movement types.
const (
	MovementNewStock   = "New Stock"
	MovementTransfer   = "Transfer"
	MovementStockOut   = "Stock Out"
	MovementAdjustment = "Adjustment"
)

// MovementTypes lists every movement type in display order.
var MovementTypes = []string{MovementNewStock, MovementTransfer, MovementStockOut, MovementAdjustment}

// Movement records stock entering, leaving or moving between warehouses.
type Movement struct {
	Meta           `bson:",inline" yaml:",inline"`
	ProductID      string    `json:"product_id" bson:"product_id" yaml:"product_id"`
	ProductName    string    `json:"product_name" bson:"product_name" yaml:"product_name" validate:"required"`
	BatchNumber    string    `json:"batch_number" bson:"batch_number" yaml:"batch_number"`
	Quantity       int       `json:"quantity" bson:"quantity" yaml:"quantity" validate:"gte=0"`
	FromWarehouse  string    `json:"from_warehouse" bson:"from_warehouse" yaml:"from_warehouse"`
	FromLocation   string    `json:"from_location" bson:"from_location" yaml:"from_location"`
	ToWarehouse    string    `json:"to_warehouse" bson:"to_warehouse" yaml:"to_warehouse"`
	ToLocation     string    `json:"to_location" bson:"to_location" yaml:"to_location"`
	MovementType   string    `json:"movement_type" bson:"movement_type" yaml:"movement_type" validate:"required,oneof='New Stock' Transfer 'Stock Out' Adjustment"`
	MovementReason string    `json:"movement_reason,omitempty" bson:"movement_reason,omitempty" yaml:"movement_reason,omitempty"`
	Date           time.Time `json:"date" bson:"date" yaml:"date"`
	InitiatedBy    string    `json:"initiated_by" bson:"initiated_by" yaml:"initiated_by"`
	OrderNumber    string    `json:"order_number,omitempty" bson:"order_number,omitempty" yaml:"order_number,omitempty"`
	CustomerName   string    `json:"customer_name,omitempty" bson:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	ReferenceID    string    `json:"reference_id,omitempty" bson:"reference_id,omitempty" yaml:"reference_id,omitempty"`
}

func (m Movement) WithID(id string) Movement { m.ID = id; return m }

func (m Movement) Stamped(created, updated time.Time) Movement {
	m.Meta = m.Meta.stamped(created, updated)
	return m
}

// Validate checks the required fields and the movement type.
func (m Movement) Validate() error { return check(m) }
