package models

import (
	"errors"
	"fmt"
)

// ErrMissingCustomerInfo indicates the order carried no customer name or phone.
var ErrMissingCustomerInfo = errors.New("customer name and phone are required")

// ErrNoItemsSelected indicates the basket had no positive quantity.
var ErrNoItemsSelected = errors.New("no items selected")

// DuplicateItemError indicates an item with the same name already exists.
type DuplicateItemError struct {
	Name string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %q already exists", e.Name)
}

// ItemNotFoundError indicates the named item is not in the catalog.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %q not found", e.Name)
}

// InsufficientStockError indicates a basket line asked for more units than the
// catalog holds. The whole order is rejected; no line is applied.
type InsufficientStockError struct {
	Item      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Item, e.Requested, e.Available)
}

// InvalidInputError indicates a field failed validation before any mutation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError indicates the durable store rejected a read or write. The
// triggering operation must not be reported as successful; in-memory state may
// have diverged from disk and is reconciled by a reload.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
