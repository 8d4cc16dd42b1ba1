package notify

import (
	"context"

	"marketplace-core/internal/domain"
)

// Event names emitted after a lifecycle transition commits.
const (
	EventOrderCreated   = "order.created"
	EventOrderConfirmed = "order.confirmed"
	EventOrderPacked    = "order.packed"
	EventOrderDelivery  = "order.out_for_delivery"
	EventOrderCompleted = "order.completed"
	EventOrderCancelled = "order.cancelled"
)

// Notifier is a fire-and-forget sink invoked strictly after the
// transition's transaction has committed. Implementations must never
// surface failures to the caller; a lost notification cannot roll back
// a committed transition.
type Notifier interface {
	OrderEvent(ctx context.Context, event string, o *domain.Order)
}

// Noop discards every event.
type Noop struct{}

func (Noop) OrderEvent(context.Context, string, *domain.Order) {}
