package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name       string
	PriceCents int64
	Stock      int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	vendorID, err := ensureVendor(ctx, pool, "Green Grocer")
	if err != nil {
		return fmt.Errorf("ensure vendor: %w", err)
	}

	products := []productSeed{
		{Name: "Apples (1kg)", PriceCents: 450, Stock: 120},
		{Name: "Sourdough Loaf", PriceCents: 650, Stock: 40},
		{Name: "Whole Milk (1l)", PriceCents: 120, Stock: 200},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, vendorID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureVendor(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM vendors WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `INSERT INTO vendors (name) VALUES ($1) RETURNING id::text`, name).Scan(&id)
	return id, err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, vendorID string, p productSeed) error {
	var productID string
	err := pool.QueryRow(ctx, `
SELECT id::text FROM products WHERE vendor_id = $1 AND name = $2
`, vendorID, p.Name).Scan(&productID)
	if err != nil {
		err = pool.QueryRow(ctx, `
INSERT INTO products (vendor_id, name, price_cents, active)
VALUES ($1, $2, $3, true)
RETURNING id::text
`, vendorID, p.Name, p.PriceCents).Scan(&productID)
		if err != nil {
			return err
		}
	}

	_, err = pool.Exec(ctx, `
INSERT INTO inventory (vendor_id, product_id, stock_quantity)
VALUES ($1, $2, $3)
ON CONFLICT (vendor_id, product_id) DO UPDATE
SET stock_quantity = EXCLUDED.stock_quantity, updated_at = now()
`, vendorID, productID, p.Stock)
	return err
}
