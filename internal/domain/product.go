package domain

import "time"

// Product is a catalog record owned by a vendor. The order core reads it
// only through the active-product lookup; name and price are snapshotted
// into cart and order lines at mutation time.
type Product struct {
	ID         string    `json:"id"`
	VendorID   string    `json:"vendorId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}
