package models

import "time"

// ReportSnapshot is the point-in-time dashboard summary exported to MongoDB and Google Sheets.
type ReportSnapshot struct {
	GeneratedAt    time.Time `bson:"generated_at" json:"generated_at"`
	TotalItems     int       `bson:"total_items" json:"total_items"`
	TotalStock     int       `bson:"total_stock" json:"total_stock"`
	InventoryValue float64   `bson:"inventory_value" json:"inventory_value"`
	LowStockCount  int       `bson:"low_stock_count" json:"low_stock_count"`
	NewStock       float64   `bson:"new_stock" json:"new_stock"`
	StockOut       float64   `bson:"stock_out" json:"stock_out"`
	Adjustments    float64   `bson:"adjustments" json:"adjustments"`
	Transfers      int       `bson:"transfers" json:"transfers"`
	SalesAmount    float64   `bson:"sales_amount" json:"sales_amount"`
	OpenOrders     int       `bson:"open_orders" json:"open_orders"`
}
