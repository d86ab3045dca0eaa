package checkout

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one cart row. UnitPrice is the price shown to the customer when the line was added.
type Line struct {
	ItemID    uuid.UUID
	Name      string
	Quantity  int64
	UnitPrice int64
}

// Cart is owned by the caller and passed whole into Checkout.
type Cart struct {
	Lines []Line
}

// Quantity returns how many units of the item the cart already holds.
func (c *Cart) Quantity(itemID uuid.UUID) int64 {
	var n int64

	for _, l := range c.Lines {
		if l.ItemID == itemID {
			n += l.Quantity
		}
	}

	return n
}

// Add merges qty units of an item into the cart, refusing to exceed the available stock.
func (c *Cart) Add(itemID uuid.UUID, name string, unitPrice, qty, available int64) error {
	if qty <= 0 {
		return ErrInvalidLine
	}

	if c.Quantity(itemID)+qty > available {
		return &InsufficientStockError{ItemID: itemID, Name: name}
	}

	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID && c.Lines[i].UnitPrice == unitPrice {
			c.Lines[i].Quantity += qty
			return nil
		}
	}

	c.Lines = append(c.Lines, Line{ItemID: itemID, Name: name, Quantity: qty, UnitPrice: unitPrice})

	return nil
}

// Remove drops every line for the item.
func (c *Cart) Remove(itemID uuid.UUID) {
	kept := c.Lines[:0]

	for _, l := range c.Lines {
		if l.ItemID != itemID {
			kept = append(kept, l)
		}
	}

	c.Lines = kept
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// LineItem is the snapshot of a cart line stored with the sale.
type LineItem struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int64     `json:"quantity"`
}

// Amount is the line total. Checkout rejects carts whose totals overflow, so stored lines always fit.
func (l LineItem) Amount() int64 {
	return l.UnitPrice * l.Quantity
}

// Sale is a committed checkout. Amounts are in yen.
type Sale struct {
	ID           uuid.UUID
	Subtotal     int64
	TaxRate      decimal.Decimal // percent
	TaxAmount    int64
	Total        int64
	CashReceived int64
	ChangeGiven  int64
	Lines        []LineItem
	Actor        string
	CreatedAt    time.Time
}

type StockLevel struct {
	ItemID   uuid.UUID
	Name     string
	Quantity int64
}

type LowStockNotice struct {
	ItemID    uuid.UUID
	Name      string
	Quantity  int64
	Threshold int64
}

type Receipt struct {
	Sale     *Sale
	LowStock []LowStockNotice
}

type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

var (
	hundred  = decimal.NewFromInt(100)
	maxTotal = decimal.NewFromInt(math.MaxInt64)
)

// ComputeTotals applies the tax rate (a percentage) to the cart subtotal, rounding half up to whole yen.
// It returns ErrAmountTooLarge when the total does not fit in an int64.
func ComputeTotals(lines []Line, rate decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromInt(l.UnitPrice).Mul(decimal.NewFromInt(l.Quantity)))
	}

	tax := subtotal.Mul(rate).Div(hundred).Round(0)
	total := subtotal.Add(tax)

	if total.GreaterThan(maxTotal) {
		return Totals{}, ErrAmountTooLarge
	}

	return Totals{Subtotal: subtotal.IntPart(), Tax: tax.IntPart(), Total: total.IntPart()}, nil
}
