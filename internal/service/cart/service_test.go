package cart

import (
	"context"
	"errors"
	"testing"

	"marketplace-core/internal/domain"
)

type stubCartRepo struct {
	cart        *domain.Cart
	err         error
	lastProduct domain.Product
	lastQty     int
	lastRemove  *int
}

func (s *stubCartRepo) GetByOwner(_ context.Context, _, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartRepo) AddItem(_ context.Context, _, _ string, product domain.Product, quantity int) (*domain.Cart, error) {
	s.lastProduct = product
	s.lastQty = quantity
	return s.cart, s.err
}

func (s *stubCartRepo) RemoveItem(_ context.Context, _, _, _ string, quantity *int) (*domain.Cart, error) {
	s.lastRemove = quantity
	return s.cart, s.err
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) FindActive(_ context.Context, _, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func intPtr(v int) *int { return &v }

func TestAddItemValidation(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{})

	_, err := svc.AddItem(context.Background(), "cust", "vend", "", 1)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state for empty product, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), "cust", "vend", "p1", 0)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state for zero quantity, got %v", err)
	}
}

func TestAddItemProductNotFound(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{err: domain.ErrNotFound})
	_, err := svc.AddItem(context.Background(), "cust", "vend", "p1", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddItemSnapshotsCurrentProduct(t *testing.T) {
	expected := &domain.Cart{ID: "c1"}
	repo := &stubCartRepo{cart: expected}
	product := &domain.Product{ID: "p1", VendorID: "vend", Name: "Apples", PriceCents: 450, Active: true}
	svc := New(repo, &stubProductRepo{product: product})

	got, err := svc.AddItem(context.Background(), "cust", "vend", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastProduct.ID != "p1" || repo.lastProduct.PriceCents != 450 || repo.lastQty != 3 {
		t.Fatalf("add item not called with current snapshot: %+v qty=%d", repo.lastProduct, repo.lastQty)
	}
}

func TestRemoveItemValidation(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{})

	_, err := svc.RemoveItem(context.Background(), "cust", "vend", "", nil)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state for empty product, got %v", err)
	}

	_, err = svc.RemoveItem(context.Background(), "cust", "vend", "p1", intPtr(0))
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state for zero quantity, got %v", err)
	}
}

func TestRemoveItemPassesQuantityThrough(t *testing.T) {
	expected := &domain.Cart{ID: "c1"}
	repo := &stubCartRepo{cart: expected}
	svc := New(repo, &stubProductRepo{})

	got, err := svc.RemoveItem(context.Background(), "cust", "vend", "p1", intPtr(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastRemove == nil || *repo.lastRemove != 2 {
		t.Fatalf("expected quantity 2 passed through, got %v", repo.lastRemove)
	}
}

func TestRemoveItemMissingCart(t *testing.T) {
	svc := New(&stubCartRepo{err: domain.ErrNotFound}, &stubProductRepo{})
	_, err := svc.RemoveItem(context.Background(), "cust", "vend", "p1", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
