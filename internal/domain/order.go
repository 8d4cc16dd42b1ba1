package domain

import "time"

// Status is the order lifecycle state. Orders only move forward through
// the chain CREATED -> CONFIRMED -> PACKED -> OUT_FOR_DELIVERY ->
// COMPLETED; CANCELLED branches off CREATED or CONFIRMED and is terminal.
type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPacked         Status = "PACKED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the single source of truth for the state machine. Every
// lifecycle operation validates against this table rather than carrying
// its own status checks.
var transitions = map[Status][]Status{
	StatusCreated:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPacked, StatusCancelled},
	StatusPacked:         {StatusOutForDelivery},
	StatusOutForDelivery: {StatusCompleted},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

// CanTransitionTo reports whether next is a legal move from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Cancellable reports whether cancel is still allowed from s.
func (s Status) Cancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Order is created by checkout and mutated only through lifecycle
// transitions; everything except Status is immutable after creation.
type Order struct {
	ID               string      `json:"id"`
	VendorID         string      `json:"vendorId"`
	CustomerID       string      `json:"customerId"`
	Items            []OrderItem `json:"items"`
	SubtotalCents    int64       `json:"subtotalCents"`
	TaxCents         int64       `json:"taxCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	TotalCents       int64       `json:"totalCents"`
	Status           Status      `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OrderItem carries the checkout-time product snapshot.
type OrderItem struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// StatusHistoryEntry is one append-only audit row per successful
// transition, including the initial CREATED row written at checkout.
type StatusHistoryEntry struct {
	OrderID   string    `json:"orderId"`
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}
