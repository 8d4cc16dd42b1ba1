package cart

import (
	"context"
	"errors"
	"fmt"

	"marketplace-core/internal/domain"
)

// Service implements cart mutations. Carts never touch inventory; stock
// is only committed when the vendor confirms the resulting order.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	GetByOwner(ctx context.Context, customerID, vendorID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID, vendorID string, product domain.Product, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, vendorID, productID string, quantity *int) (*domain.Cart, error)
}

type productRepo interface {
	FindActive(ctx context.Context, vendorID, productID string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the active cart for the pair, or ErrNotFound.
func (s *Service) Get(ctx context.Context, customerID, vendorID string) (*domain.Cart, error) {
	return s.repo.GetByOwner(ctx, customerID, vendorID)
}

// AddItem snapshots the product's current name and price into the cart,
// creating the cart on first use. Adding a product already in the cart
// increments its quantity and refreshes the snapshot.
func (s *Service) AddItem(ctx context.Context, customerID, vendorID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" || quantity < 1 {
		return nil, fmt.Errorf("%w: invalid productId or quantity", domain.ErrInvalidState)
	}

	product, err := s.products.FindActive(ctx, vendorID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, productID)
		}
		return nil, err
	}

	return s.repo.AddItem(ctx, customerID, vendorID, *product, quantity)
}

// RemoveItem decrements a line item by quantity, or removes the line
// entirely when quantity is nil or at least the current quantity.
func (s *Service) RemoveItem(ctx context.Context, customerID, vendorID, productID string, quantity *int) (*domain.Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidState)
	}
	if quantity != nil && *quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidState)
	}
	return s.repo.RemoveItem(ctx, customerID, vendorID, productID, quantity)
}
