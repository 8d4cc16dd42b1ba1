package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState indicates a business-rule or state-machine violation.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict indicates a concurrency-induced failure such as insufficient stock.
	ErrConflict = errors.New("conflict")
	// ErrForbidden indicates the actor is not authorized for the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrTransient indicates a storage failure that is safe to retry; no
	// partial effect of the failed operation is observable.
	ErrTransient = errors.New("transient storage failure")
)

// InsufficientStockError names the product whose conditional decrement failed.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrConflict
}

// TransitionError reports an order transition attempted from the wrong status.
type TransitionError struct {
	Current  Status
	Required Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order status is %s, transition requires %s", e.Current, e.Required)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidState
}
