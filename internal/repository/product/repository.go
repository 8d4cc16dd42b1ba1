package product

import (
	"context"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/domain"
)

// Repository looks up catalog records. The order core treats the catalog
// as read-only; FindActive is the only lookup checkout and cart mutations
// rely on.
type Repository interface {
	FindActive(ctx context.Context, vendorID, productID string) (*domain.Product, error)
	FindActiveTx(ctx context.Context, tx pgx.Tx, vendorID, productID string) (*domain.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
}
