package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"marketplace-core/internal/db"
	"marketplace-core/internal/domain"
	"marketplace-core/internal/notify"
)

// Service advances orders through the lifecycle state machine. Every
// transition is one transaction: the order row is locked and its status
// re-validated inside the transaction, the status update and history
// append happen together, and confirm/cancel move stock through the
// inventory ledger in the same scope. Notifications go out only after
// commit.
type Service struct {
	runner    db.TxRunner
	orders    orderRepo
	inventory inventoryRepo
	notifier  notify.Notifier
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Order, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, orderID string, status domain.Status) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	History(ctx context.Context, orderID string) ([]domain.StatusHistoryEntry, error)
}

type inventoryRepo interface {
	DecrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error
	IncrementBulk(ctx context.Context, tx pgx.Tx, vendorID string, items []domain.StockMovement) error
}

func New(runner db.TxRunner, orders orderRepo, inventory inventoryRepo, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{runner: runner, orders: orders, inventory: inventory, notifier: notifier}
}

// accessPolicy selects who may invoke a transition, per the lifecycle
// table. Authorization is checked before state validity in every case.
type accessPolicy int

const (
	// vendorOwner: only the vendor owning the order.
	vendorOwner accessPolicy = iota
	// vendorOwnerOrAgent: a vendor actor must own the order; any other
	// authenticated role (e.g. a delivery agent) passes.
	vendorOwnerOrAgent
	// anyOwner: the owning vendor or the owning customer.
	anyOwner
)

func authorize(actor domain.Actor, o *domain.Order, policy accessPolicy) error {
	switch policy {
	case vendorOwner:
		if actor.Role == domain.RoleVendor && actor.VendorID == o.VendorID {
			return nil
		}
	case vendorOwnerOrAgent:
		if actor.Role != domain.RoleVendor || actor.VendorID == o.VendorID {
			return nil
		}
	case anyOwner:
		if actor.Role == domain.RoleVendor && actor.VendorID == o.VendorID {
			return nil
		}
		if actor.Role == domain.RoleCustomer && actor.UserID == o.CustomerID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// requiredFrom maps each forward transition target to the status the
// order must currently hold.
var requiredFrom = map[domain.Status]domain.Status{
	domain.StatusConfirmed:      domain.StatusCreated,
	domain.StatusPacked:         domain.StatusConfirmed,
	domain.StatusOutForDelivery: domain.StatusPacked,
	domain.StatusCompleted:      domain.StatusOutForDelivery,
}

var eventFor = map[domain.Status]string{
	domain.StatusConfirmed:      notify.EventOrderConfirmed,
	domain.StatusPacked:         notify.EventOrderPacked,
	domain.StatusOutForDelivery: notify.EventOrderDelivery,
	domain.StatusCompleted:      notify.EventOrderCompleted,
	domain.StatusCancelled:      notify.EventOrderCancelled,
}

// Confirm reserves stock for every line item atomically. Insufficient
// stock on any item aborts with a conflict and leaves order status,
// history, and all stock untouched.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, domain.StatusConfirmed, vendorOwner, func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		return s.inventory.DecrementBulk(ctx, tx, o.VendorID, movements(o))
	})
}

func (s *Service) Pack(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, domain.StatusPacked, vendorOwner, nil)
}

func (s *Service) OutForDelivery(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, domain.StatusOutForDelivery, vendorOwnerOrAgent, nil)
}

func (s *Service) Complete(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, domain.StatusCompleted, anyOwner, nil)
}

// Cancel is allowed from CREATED and CONFIRMED only. Cancelling a
// CONFIRMED order restocks every line item before the status flips, in
// the same transaction.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, domain.StatusCancelled, anyOwner, func(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
		if o.Status != domain.StatusConfirmed {
			return nil
		}
		return s.inventory.IncrementBulk(ctx, tx, o.VendorID, movements(o))
	})
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, orderID string, target domain.Status, policy accessPolicy, move func(ctx context.Context, tx pgx.Tx, o *domain.Order) error) (*domain.Order, error) {
	var result *domain.Order

	err := s.runner.InTx(ctx, func(tx pgx.Tx) error {
		o, err := s.orders.GetForUpdateTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := authorize(actor, o, policy); err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(target) {
			if target == domain.StatusCancelled {
				return fmt.Errorf("%w: order cannot be cancelled from status %s", domain.ErrInvalidState, o.Status)
			}
			return &domain.TransitionError{Current: o.Status, Required: requiredFrom[target]}
		}
		if move != nil {
			if err := move(ctx, tx, o); err != nil {
				return err
			}
		}
		if err := s.orders.SetStatusTx(ctx, tx, o.ID, target); err != nil {
			return err
		}
		o.Status = target
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderEvent(ctx, eventFor[target], result)
	return result, nil
}

// List returns the actor's orders, newest first: the vendor's book for
// vendor actors, the customer's own orders otherwise.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if actor.Role == domain.RoleVendor {
		return s.orders.ListByVendor(ctx, actor.VendorID)
	}
	return s.orders.ListByCustomer(ctx, actor.UserID)
}

// GetWithHistory returns the order and its full status history, oldest
// first, applying the same ownership check as the transitions.
func (s *Service) GetWithHistory(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, []domain.StatusHistoryEntry, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(actor, o, anyOwner); err != nil {
		return nil, nil, err
	}
	history, err := s.orders.History(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return o, history, nil
}

func movements(o *domain.Order) []domain.StockMovement {
	items := make([]domain.StockMovement, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.StockMovement{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}
