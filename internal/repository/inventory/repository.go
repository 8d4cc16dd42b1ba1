package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/domain"
)

// Repository is the single point of truth for stock. The bulk operations
// run inside a caller-owned transaction so a failed confirm or cancel
// rolls back every movement it made.
type Repository interface {
	Get(ctx context.Context, vendorID, productID string) (*domain.InventoryRecord, error)
	Put(ctx context.Context, vendorID, productID string, stock, lowStockThreshold int) (*domain.InventoryRecord, error)
	DecrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error
	IncrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error
}
