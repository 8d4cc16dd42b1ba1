package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/db"
	"marketplace-core/internal/domain"
	"marketplace-core/internal/notify"
)

// Service converts a cart into an order. The whole conversion is one
// transaction: load and lock the cart, re-validate and re-price every
// line against the current catalog, persist the order with its CREATED
// history row, and delete the cart. No stock moves at checkout.
type Service struct {
	runner   db.TxRunner
	carts    cartRepo
	products productRepo
	orders   orderRepo
	notifier notify.Notifier

	taxRateBasisPts  int64
	deliveryFeeCents int64
}

type cartRepo interface {
	GetByOwnerTx(ctx context.Context, tx pgx.Tx, customerID, vendorID string) (*domain.Cart, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, cartID string) error
}

type productRepo interface {
	FindActiveTx(ctx context.Context, tx pgx.Tx, vendorID, productID string) (*domain.Product, error)
}

type orderRepo interface {
	CreateTx(ctx context.Context, tx pgx.Tx, o *domain.Order) error
}

func New(runner db.TxRunner, carts cartRepo, products productRepo, orders orderRepo, notifier notify.Notifier, taxRateBasisPts, deliveryFeeCents int64) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		runner:           runner,
		carts:            carts,
		products:         products,
		orders:           orders,
		notifier:         notifier,
		taxRateBasisPts:  taxRateBasisPts,
		deliveryFeeCents: deliveryFeeCents,
	}
}

// Checkout is all-or-nothing: a single unavailable product aborts the
// whole operation and leaves the cart untouched. Prices come from the
// current catalog record, not the cart snapshot; price at checkout wins.
func (s *Service) Checkout(ctx context.Context, customerID, vendorID string) (*domain.Order, error) {
	var order *domain.Order

	err := s.runner.InTx(ctx, func(tx pgx.Tx) error {
		cart, err := s.carts.GetByOwnerTx(ctx, tx, customerID, vendorID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: cart is empty", domain.ErrInvalidState)
			}
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: cart is empty", domain.ErrInvalidState)
		}

		var subtotal int64
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			product, err := s.products.FindActiveTx(ctx, tx, vendorID, it.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: product %s not available", domain.ErrInvalidState, it.ProductID)
				}
				return err
			}
			subtotal += product.PriceCents * int64(it.Quantity)
			items = append(items, domain.OrderItem{
				ProductID:  product.ID,
				Name:       product.Name,
				PriceCents: product.PriceCents,
				Quantity:   it.Quantity,
			})
		}

		tax := taxFor(subtotal, s.taxRateBasisPts)
		order = &domain.Order{
			VendorID:         vendorID,
			CustomerID:       customerID,
			Items:            items,
			SubtotalCents:    subtotal,
			TaxCents:         tax,
			DeliveryFeeCents: s.deliveryFeeCents,
			TotalCents:       subtotal + tax + s.deliveryFeeCents,
			Status:           domain.StatusCreated,
		}
		if err := s.orders.CreateTx(ctx, tx, order); err != nil {
			return err
		}

		return s.carts.DeleteTx(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderEvent(ctx, notify.EventOrderCreated, order)
	return order, nil
}

// taxFor rounds half-up to whole cents.
func taxFor(subtotalCents, rateBasisPts int64) int64 {
	return (subtotalCents*rateBasisPts + 5000) / 10000
}
