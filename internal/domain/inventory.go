package domain

import "time"

// InventoryRecord tracks stock for one (vendor, product) pair. The storage
// layer enforces stock_quantity >= 0; all movements go through the
// inventory repository's atomic increment/decrement.
type InventoryRecord struct {
	VendorID          string    `json:"vendorId"`
	ProductID         string    `json:"productId"`
	StockQuantity     int       `json:"stockQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StockMovement is one line of a bulk inventory operation.
type StockMovement struct {
	ProductID string
	Quantity  int
}
