package domain

import "time"

// Cart holds the single active cart for a (customer, vendor) pair.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	VendorID   string     `json:"vendorId"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CartItem is a line item with the product name/price snapshotted at the
// time of the last add call. Quantity is always positive; a line whose
// quantity reaches zero is removed instead.
type CartItem struct {
	ProductID  string    `json:"productId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"addedAt"`
}
