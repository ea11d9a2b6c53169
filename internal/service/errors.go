package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these onto HTTP status
// codes; services themselves never partially apply effects on an error path.
var (
	// ErrRegisterAlreadyOpen is returned by Open when the register state row
	// says a shift is already in progress.
	ErrRegisterAlreadyOpen = errors.New("cash register is already open")

	// ErrRegisterNotOpen is returned by Close when there is no open shift.
	ErrRegisterNotOpen = errors.New("no open cash register found")
)

// NotFoundError marks a referenced entity as absent (or soft-deleted).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InsufficientStockError names the product whose stock cannot cover the
// requested quantity. Raised both by the pre-flight check and by the
// conditional decrement inside the sale transaction.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// InvalidInputError covers malformed input that survives DTO validation,
// e.g. a non-UUID product id inside a basket line.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
