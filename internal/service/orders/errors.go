package orders

import "errors"

var (
	// ErrMissingAmounts indicates neither milk nor wool was requested.
	ErrMissingAmounts = errors.New("either milk or wool amount is required")
	// ErrInvalidAmount indicates a requested amount is negative, not a number or too large.
	ErrInvalidAmount = errors.New("invalid order amount")
	// ErrInsufficientStock is the parent of the per-resource shortfall errors.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrInsufficientStockMilk = &shortfallError{resource: "milk"}
	ErrInsufficientStockWool = &shortfallError{resource: "wool"}
	ErrInsufficientStockBoth = &shortfallError{resource: "both milk and wool"}
)

type shortfallError struct {
	resource string
}

func (e *shortfallError) Error() string {
	return "insufficient stock for " + e.resource
}

func (e *shortfallError) Unwrap() error {
	return ErrInsufficientStock
}
