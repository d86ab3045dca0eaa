package inventory

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a stock change in the ledger.
type MovementType string

const (
	MovementReceive MovementType = "receive"
	MovementIssue   MovementType = "issue"
	MovementDispose MovementType = "dispose"
	// MovementAdjust sets an absolute quantity. It is logged as a receive or dispose of the difference.
	MovementAdjust MovementType = "adjust"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementReceive, MovementIssue, MovementDispose, MovementAdjust:
		return true
	}

	return false
}

func (t MovementType) Label() string {
	switch t {
	case MovementReceive:
		return "Receive"
	case MovementIssue:
		return "Issue"
	case MovementDispose:
		return "Dispose"
	case MovementAdjust:
		return "Adjust"
	}

	return string(t)
}

// Status is a derived stock state used to filter item listings.
type Status string

const (
	StatusLowStock Status = "low_stock"
	StatusNormal   Status = "normal"
	StatusExpiring Status = "expiring"
)

func (s Status) Valid() bool {
	return s == StatusLowStock || s == StatusNormal || s == StatusExpiring
}

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Item is a catalog entry. Quantity is the running total of its movements.
type Item struct {
	ID           uuid.UUID
	Name         string
	CategoryID   uuid.UUID
	CategoryName string // Loaded via JOIN
	Quantity     int64
	Unit         string
	CostPrice    int64 // Amount in yen
	SellingPrice int64 // Amount in yen
	ReorderLevel int64
	Supplier     string
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowReorder reports whether the item should be restocked.
func (i *Item) BelowReorder() bool {
	return i.Quantity <= i.ReorderLevel
}

// ExpiresBy reports whether the item has an expiry date on or before the given day.
func (i *Item) ExpiresBy(day time.Time) bool {
	if i.ExpiryDate == nil {
		return false
	}

	return !i.ExpiryDate.After(day)
}

// Movement is an immutable ledger row.
type Movement struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	ItemName  string // Loaded via JOIN
	ItemUnit  string // Loaded via JOIN
	Type      MovementType
	Quantity  int64
	Reason    string
	Actor     string
	SaleID    *uuid.UUID
	CreatedAt time.Time
}

// Delta is the signed effect of the movement on the item quantity.
func (m *Movement) Delta() int64 {
	switch m.Type {
	case MovementIssue, MovementDispose:
		return -m.Quantity
	}

	return m.Quantity
}

// Summary holds the dashboard figures for the whole catalog.
type Summary struct {
	TotalItems    int64
	LowStockItems int64
	ExpiringItems int64
	StockValue    int64 // Sum of quantity × cost price, in yen
}
