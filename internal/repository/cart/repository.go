package cart

import (
	"context"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/domain"
)

// Repository owns the single active cart per (customer, vendor) pair.
// AddItem and RemoveItem run their own transactions; the Tx variants
// participate in the checkout unit of work.
type Repository interface {
	GetByOwner(ctx context.Context, customerID, vendorID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID, vendorID string, product domain.Product, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, vendorID, productID string, quantity *int) (*domain.Cart, error)
	GetByOwnerTx(ctx context.Context, tx pgx.Tx, customerID, vendorID string) (*domain.Cart, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, cartID string) error
}
