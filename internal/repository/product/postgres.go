package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-core/internal/domain"
)

// DB matches the methods from *pgxpool.Pool that this repository uses,
// so the database can be mocked in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db DB
}

func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

const findActiveQuery = `
SELECT id::text, vendor_id::text, name, price_cents, active, created_at
FROM products
WHERE vendor_id = $1 AND id = $2 AND active
`

func (r *postgresRepo) FindActive(ctx context.Context, vendorID, productID string) (*domain.Product, error) {
	return findActive(ctx, r.db, vendorID, productID)
}

// FindActiveTx re-validates a product inside an open transaction, so a
// checkout sees catalog state consistent with the rest of its effects.
func (r *postgresRepo) FindActiveTx(ctx context.Context, tx pgx.Tx, vendorID, productID string) (*domain.Product, error) {
	return findActive(ctx, tx, vendorID, productID)
}

func findActive(ctx context.Context, q rowQuerier, vendorID, productID string) (*domain.Product, error) {
	var p domain.Product
	err := q.QueryRow(ctx, findActiveQuery, vendorID, productID).Scan(
		&p.ID,
		&p.VendorID,
		&p.Name,
		&p.PriceCents,
		&p.Active,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	const q = `
SELECT id::text, vendor_id::text, name, price_cents, active, created_at
FROM products
WHERE vendor_id = $1 AND active
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.PriceCents, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
