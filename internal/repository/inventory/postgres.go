package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-core/internal/domain"
)

// DB matches the methods from *pgxpool.Pool that this repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db DB
}

func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Get(ctx context.Context, vendorID, productID string) (*domain.InventoryRecord, error) {
	const q = `
SELECT vendor_id::text, product_id::text, stock_quantity, low_stock_threshold, updated_at
FROM inventory
WHERE vendor_id = $1 AND product_id = $2
`
	var rec domain.InventoryRecord
	err := r.db.QueryRow(ctx, q, vendorID, productID).Scan(
		&rec.VendorID,
		&rec.ProductID,
		&rec.StockQuantity,
		&rec.LowStockThreshold,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Put sets the absolute stock level for a (vendor, product) pair,
// creating the record on first use.
func (r *postgresRepo) Put(ctx context.Context, vendorID, productID string, stock, lowStockThreshold int) (*domain.InventoryRecord, error) {
	const q = `
INSERT INTO inventory (vendor_id, product_id, stock_quantity, low_stock_threshold)
VALUES ($1, $2, $3, $4)
ON CONFLICT (vendor_id, product_id) DO UPDATE
SET stock_quantity = EXCLUDED.stock_quantity,
    low_stock_threshold = EXCLUDED.low_stock_threshold,
    updated_at = now()
RETURNING vendor_id::text, product_id::text, stock_quantity, low_stock_threshold, updated_at
`
	var rec domain.InventoryRecord
	err := r.db.QueryRow(ctx, q, vendorID, productID, stock, lowStockThreshold).Scan(
		&rec.VendorID,
		&rec.ProductID,
		&rec.StockQuantity,
		&rec.LowStockThreshold,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DecrementBulk reserves stock for every item or none. Each decrement is
// a single conditional UPDATE, never a read-then-write, so concurrent
// confirms on the same row serialize at the storage layer and can never
// drive stock below zero. Returning an error rolls back the enclosing
// transaction, undoing any decrements already applied in this call.
func (r *postgresRepo) DecrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error {
	for _, it := range items {
		cmd, err := tx.Exec(ctx, `
UPDATE inventory
SET stock_quantity = stock_quantity - $3, updated_at = now()
WHERE vendor_id = $1 AND product_id = $2 AND stock_quantity >= $3
`, vendorID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return classifyDecrementFailure(ctx, tx, vendorID, it.ProductID)
		}
	}
	return nil
}

// IncrementBulk restocks every item unconditionally. The inventory record
// must already exist; restock never creates one.
func (r *postgresRepo) IncrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error {
	for _, it := range items {
		cmd, err := tx.Exec(ctx, `
UPDATE inventory
SET stock_quantity = stock_quantity + $3, updated_at = now()
WHERE vendor_id = $1 AND product_id = $2
`, vendorID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return fmt.Errorf("%w: inventory record for product %s", domain.ErrNotFound, it.ProductID)
		}
	}
	return nil
}

// classifyDecrementFailure tells a missing inventory row apart from an
// insufficient one, since callers surface them differently.
func classifyDecrementFailure(ctx context.Context, tx pgx.Tx, vendorID, productID string) error {
	var exists bool
	err := tx.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM inventory WHERE vendor_id = $1 AND product_id = $2)
`, vendorID, productID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: inventory record for product %s", domain.ErrNotFound, productID)
	}
	return &domain.InsufficientStockError{ProductID: productID}
}
