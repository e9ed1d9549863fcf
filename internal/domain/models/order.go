package models

import "time"

// Customer order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Customer is a buyer of customer orders.
type Customer struct {
	Meta    `bson:",inline" yaml:",inline"`
	Name    string `json:"name" bson:"name" yaml:"name" validate:"required"`
	Email   string `json:"email" bson:"email" yaml:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" bson:"phone" yaml:"phone"`
	Address string `json:"address" bson:"address" yaml:"address"`
}

func (c Customer) WithID(id string) Customer { c.ID = id; return c }

func (c Customer) Stamped(created, updated time.Time) Customer {
	c.Meta = c.Meta.stamped(created, updated)
	return c
}

// Validate checks the required fields.
func (c Customer) Validate() error { return check(c) }

// OrderLine is one product line of a customer order.
type OrderLine struct {
	ID          string  `json:"id" bson:"id" yaml:"id"`
	ProductID   string  `json:"product_id" bson:"product_id" yaml:"product_id"`
	ProductName string  `json:"product_name" bson:"product_name" yaml:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" bson:"quantity" yaml:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price" yaml:"unit_price" validate:"gte=0"`
	TotalPrice  float64 `json:"total_price" bson:"total_price" yaml:"total_price"`
}

// Order is a customer order with its product lines.
type Order struct {
	Meta              `bson:",inline" yaml:",inline"`
	OrderNumber       string      `json:"order_number" bson:"order_number" yaml:"order_number" validate:"required"`
	OrderDate         time.Time   `json:"order_date" bson:"order_date" yaml:"order_date"`
	CustomerID        string      `json:"customer_id" bson:"customer_id" yaml:"customer_id"`
	CustomerName      string      `json:"customer_name" bson:"customer_name" yaml:"customer_name" validate:"required"`
	CustomerEmail     string      `json:"customer_email" bson:"customer_email" yaml:"customer_email"`
	Items             []OrderLine `json:"items" bson:"items" yaml:"items" validate:"dive"`
	Status            string      `json:"status" bson:"status" yaml:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	PaymentMethod     string      `json:"payment_method" bson:"payment_method" yaml:"payment_method"`
	ShippingMethod    string      `json:"shipping_method" bson:"shipping_method" yaml:"shipping_method"`
	ShippingAddress   string      `json:"shipping_address" bson:"shipping_address" yaml:"shipping_address"`
	BillingAddress    string      `json:"billing_address" bson:"billing_address" yaml:"billing_address"`
	Notes             string      `json:"notes" bson:"notes" yaml:"notes"`
	TotalAmount       float64     `json:"total_amount" bson:"total_amount" yaml:"total_amount"`
	TrackingNumber    string      `json:"tracking_number,omitempty" bson:"tracking_number,omitempty" yaml:"tracking_number,omitempty"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty" bson:"estimated_delivery,omitempty" yaml:"estimated_delivery,omitempty"`
}

func (o Order) WithID(id string) Order { o.ID = id; return o }

func (o Order) Stamped(created, updated time.Time) Order {
	o.Meta = o.Meta.stamped(created, updated)
	return o
}

// Validate checks the order header and every line.
func (o Order) Validate() error { return check(o) }

// Derive recomputes every line total and the order total from quantities and unit prices.
func (o Order) Derive() Order {
	lines := make([]OrderLine, len(o.Items))
	total := 0.0
	for i, line := range o.Items {
		line.TotalPrice = float64(line.Quantity) * line.UnitPrice
		total += line.TotalPrice
		lines[i] = line
	}
	o.Items = lines
	o.TotalAmount = total
	return o
}
