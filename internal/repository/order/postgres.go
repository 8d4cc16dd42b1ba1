package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-core/internal/domain"
)

// DB matches the methods from *pgxpool.Pool that this repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
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

const orderColumns = `id::text, vendor_id::text, customer_id::text, subtotal_cents, tax_cents, delivery_fee_cents, total_cents, status, created_at`

// CreateTx inserts the order, its item snapshots, and the initial CREATED
// history row as part of the checkout transaction.
func (r *postgresRepo) CreateTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	err := tx.QueryRow(ctx, `
INSERT INTO orders (id, vendor_id, customer_id, subtotal_cents, tax_cents, delivery_fee_cents, total_cents, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at
`, o.ID, o.VendorID, o.CustomerID, o.SubtotalCents, o.TaxCents, o.DeliveryFeeCents, o.TotalCents, string(o.Status)).Scan(&o.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
`, o.ID, item.ProductID, item.Name, item.PriceCents, item.Quantity); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO order_status_history (order_id, status) VALUES ($1, $2)
`, o.ID, string(o.Status)); err != nil {
		return err
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return fetchOrder(ctx, r.db, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdateTx locks the order row so concurrent transitions on the
// same order serialize; status is re-validated against this fresh copy,
// never against caller-supplied state.
func (r *postgresRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Order, error) {
	return fetchOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// SetStatusTx updates the status field and appends the matching history
// row in the same transaction; one cannot persist without the other.
func (r *postgresRepo) SetStatusTx(ctx context.Context, tx pgx.Tx, orderID string, status domain.Status) error {
	cmd, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, string(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = tx.Exec(ctx, `
INSERT INTO order_status_history (order_id, status) VALUES ($1, $2)
`, orderID, string(status))
	return err
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *postgresRepo) History(ctx context.Context, orderID string) ([]domain.StatusHistoryEntry, error) {
	const q = `
SELECT order_id::text, status, changed_at
FROM order_status_history
WHERE order_id = $1
ORDER BY changed_at ASC, id ASC
`
	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.StatusHistoryEntry
	for rows.Next() {
		var entry domain.StatusHistoryEntry
		var status string
		if err := rows.Scan(&entry.OrderID, &status, &entry.ChangedAt); err != nil {
			return nil, err
		}
		entry.Status = domain.Status(status)
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *postgresRepo) list(ctx context.Context, q string, arg any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := loadItems(ctx, r.db, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func fetchOrder(ctx context.Context, q querier, orderQuery, id string) (*domain.Order, error) {
	row := q.QueryRow(ctx, orderQuery, id)
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := loadItems(ctx, q, o); err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrder(rows pgx.Rows) (*domain.Order, error) {
	return scanOrderRow(rows)
}

func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	if err := row.Scan(
		&o.ID,
		&o.VendorID,
		&o.CustomerID,
		&o.SubtotalCents,
		&o.TaxCents,
		&o.DeliveryFeeCents,
		&o.TotalCents,
		&status,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

func loadItems(ctx context.Context, q querier, o *domain.Order) error {
	const itemsQuery = `
SELECT product_id::text, name, price_cents, quantity
FROM order_items
WHERE order_id = $1
ORDER BY product_id
`
	rows, err := q.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.PriceCents, &item.Quantity); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
