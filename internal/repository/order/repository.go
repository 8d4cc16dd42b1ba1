package order

import (
	"context"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/domain"
)

// Repository persists orders, their immutable item snapshots, and the
// append-only status history. Status mutations only happen through
// SetStatusTx inside a lifecycle transaction.
type Repository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Order, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, orderID string, status domain.Status) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	History(ctx context.Context, orderID string) ([]domain.StatusHistoryEntry, error)
}
