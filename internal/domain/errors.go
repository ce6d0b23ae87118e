package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidPricingError is returned when catalog data breaks a pricing
// invariant. Raised at write time; a malformed item is rejected, never
// normalized silently.
type InvalidPricingError struct {
	Field  string
	Reason string
}

func (e *InvalidPricingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid pricing: %s: %s", e.Field, e.Reason)
	}
	return "invalid pricing: " + e.Reason
}

// InvalidQuantityError is returned for a zero or negative requested quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be at least 1", e.Quantity)
}

// PriceMismatchError is returned when a client-submitted total disagrees with
// the server recomputation beyond tolerance. The order is rejected, not
// silently corrected.
type PriceMismatchError struct {
	ClientTotal decimal.Decimal
	ServerTotal decimal.Decimal
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("total mismatch: client sent %s, server computed %s",
		e.ClientTotal.StringFixed(2), e.ServerTotal.StringFixed(2))
}

// OutOfStockError is returned when the conditional stock decrement at order
// confirmation affects no rows, even if an earlier availability check passed.
type OutOfStockError struct {
	ItemID    string
	Requested int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested %d)", e.ItemID, e.Requested)
}

// SequenceAllocationError wraps a store failure during order-number
// allocation after retries were exhausted. The order creation it belongs to
// must be aborted whole.
type SequenceAllocationError struct {
	Attempts int
	Err      error
}

func (e *SequenceAllocationError) Error() string {
	return fmt.Sprintf("order number allocation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SequenceAllocationError) Unwrap() error { return e.Err }
