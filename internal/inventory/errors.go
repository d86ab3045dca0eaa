package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrDuplicateItem     = errors.New("item with this name already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	ErrInsufficientStock = errors.New("insufficient stock")
)
