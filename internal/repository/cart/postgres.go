package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-core/internal/domain"
)

// DB matches the methods from *pgxpool.Pool that this repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db DB
}

func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByOwner(ctx context.Context, customerID, vendorID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, customer_id::text, vendor_id::text, created_at
FROM carts
WHERE customer_id = $1 AND vendor_id = $2
`
	return fetchCart(ctx, r.db, q, customerID, vendorID)
}

// GetByOwnerTx locks the cart row for the duration of the transaction so
// a concurrent mutation cannot slip between checkout validation and the
// cart delete.
func (r *postgresRepo) GetByOwnerTx(ctx context.Context, tx pgx.Tx, customerID, vendorID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, customer_id::text, vendor_id::text, created_at
FROM carts
WHERE customer_id = $1 AND vendor_id = $2
FOR UPDATE
`
	return fetchCart(ctx, tx, q, customerID, vendorID)
}

// AddItem creates the cart on first use and upserts the line item. An
// existing line has its quantity incremented and its name/price snapshot
// refreshed to the current catalog values.
func (r *postgresRepo) AddItem(ctx context.Context, customerID, vendorID string, product domain.Product, quantity int) (*domain.Cart, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `
SELECT id::text FROM carts WHERE customer_id = $1 AND vendor_id = $2 FOR UPDATE
`, customerID, vendorID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `
INSERT INTO carts (customer_id, vendor_id) VALUES ($1, $2) RETURNING id::text
`, customerID, vendorID).Scan(&cartID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity,
    name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents
`, cartID, product.ID, product.Name, product.PriceCents, quantity); err != nil {
		return nil, err
	}

	cart, err := fetchCartByID(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem decrements a line item, or deletes it when quantity is nil
// or at least the current quantity. Lines never persist at quantity zero.
func (r *postgresRepo) RemoveItem(ctx context.Context, customerID, vendorID, productID string, quantity *int) (*domain.Cart, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `
SELECT id::text FROM carts WHERE customer_id = $1 AND vendor_id = $2 FOR UPDATE
`, customerID, vendorID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var current int
	err = tx.QueryRow(ctx, `
SELECT quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2
`, cartID, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if quantity == nil || *quantity >= current {
		if _, err := tx.Exec(ctx, `
DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
			return nil, err
		}
	} else {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items SET quantity = quantity - $3 WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, *quantity); err != nil {
			return nil, err
		}
	}

	cart, err := fetchCartByID(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

// DeleteTx removes the cart (and, via cascade, its items) inside the
// checkout transaction.
func (r *postgresRepo) DeleteTx(ctx context.Context, tx pgx.Tx, cartID string) error {
	cmd, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func fetchCart(ctx context.Context, q querier, cartQuery string, args ...any) (*domain.Cart, error) {
	var cart domain.Cart
	err := q.QueryRow(ctx, cartQuery, args...).Scan(
		&cart.ID,
		&cart.CustomerID,
		&cart.VendorID,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := loadItems(ctx, q, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func fetchCartByID(ctx context.Context, q querier, cartID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, customer_id::text, vendor_id::text, created_at
FROM carts
WHERE id = $1
`
	return fetchCart(ctx, q, cartQuery, cartID)
}

func loadItems(ctx context.Context, q querier, cart *domain.Cart) error {
	const itemsQuery = `
SELECT product_id::text, name, price_cents, quantity, added_at
FROM cart_items
WHERE cart_id = $1
ORDER BY added_at ASC
`
	rows, err := q.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.PriceCents, &item.Quantity, &item.AddedAt); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}
