package settings

import (
	"errors"
	"time"
)

// Key names a tunable value kept in the settings table.
type Key string

const (
	KeyTaxRate           Key = "tax_rate"
	KeyLowStockThreshold Key = "low_stock_threshold"
)

var (
	ErrNotFound     = errors.New("setting not found")
	ErrUnknownKey   = errors.New("unknown setting key")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Setting is a single key/value pair.
type Setting struct {
	Key       Key
	Value     string
	UpdatedAt *time.Time // nil when the value is the built-in default
}

var defaults = map[Key]string{
	KeyTaxRate:           "10",
	KeyLowStockThreshold: "5",
}

// Keys returns every known setting key in display order.
func Keys() []Key {
	return []Key{KeyTaxRate, KeyLowStockThreshold}
}
