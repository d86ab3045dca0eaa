package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("cash received is less than the total")
	ErrInvalidLine         = fmt.Errorf("%w: cart lines need a positive quantity and a non-negative price", inventory.ErrInvalidInput)
	ErrAmountTooLarge      = fmt.Errorf("%w: cart total is too large", inventory.ErrInvalidInput)
)

// InsufficientStockError names the item that could not be deducted.
type InsufficientStockError struct {
	ItemID uuid.UUID
	Name   string
}

func (e *InsufficientStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("insufficient stock for %s", e.Name)
	}

	return fmt.Sprintf("insufficient stock for item %s", e.ItemID)
}

func (e *InsufficientStockError) Unwrap() error {
	return inventory.ErrInsufficientStock
}
