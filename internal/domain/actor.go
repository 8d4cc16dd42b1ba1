package domain

// Role distinguishes the two authenticated actor kinds.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
)

// Actor is the already-authenticated identity attached to every request.
// Authentication itself happens upstream; the core only consumes this
// descriptor. VendorID is set for vendor actors only.
type Actor struct {
	Role     Role
	UserID   string
	VendorID string
}
