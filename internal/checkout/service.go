package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=checkout
type Repository interface {
	BeginSale(ctx context.Context) (SaleTx, error)
	StockLevels(ctx context.Context, itemIDs []uuid.UUID) ([]StockLevel, error)
	ListSales(ctx context.Context, from, to time.Time) ([]*Sale, error)
}

// SaleTx is the single database transaction a checkout runs in.
type SaleTx interface {
	// DecrementStock removes qty units only if that many are on hand.
	DecrementStock(ctx context.Context, itemID uuid.UUID, qty int64) (*StockLevel, error)
	InsertSale(ctx context.Context, sale *Sale) error
	InsertMovement(ctx context.Context, movement *inventory.Movement) error
	Commit() error
	Rollback() error
}

// Settings supplies the values checkout reads on every sale.
type Settings interface {
	TaxRate(ctx context.Context) (decimal.Decimal, error)
	LowStockThreshold(ctx context.Context) (int64, error)
}

const saleReason = "sale"

type Service struct {
	repo     Repository
	settings Settings
}

func NewService(repo Repository, settings Settings) *Service {
	return &Service{repo: repo, settings: settings}
}

// Checkout validates the cart, deducts stock and records the sale atomically.
// Nothing is written unless every line can be fulfilled.
func (s *Service) Checkout(ctx context.Context, cart Cart, cashReceived int64, actor string) (*Receipt, error) {
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	for _, l := range cart.Lines {
		if l.ItemID == uuid.Nil || l.Quantity <= 0 || l.UnitPrice < 0 {
			return nil, ErrInvalidLine
		}
	}

	if cashReceived < 0 {
		return nil, fmt.Errorf("%w: cash received must not be negative", inventory.ErrInvalidInput)
	}

	rate, err := s.settings.TaxRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tax rate: %w", err)
	}

	totals, err := ComputeTotals(cart.Lines, rate)
	if err != nil {
		return nil, err
	}

	if cashReceived < totals.Total {
		return nil, fmt.Errorf("%w: total %d, received %d", ErrInsufficientPayment, totals.Total, cashReceived)
	}

	lines := mergeLines(cart.Lines)

	stx, err := s.repo.BeginSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale: %w", err)
	}
	defer stx.Rollback()

	names := make(map[uuid.UUID]string, len(lines))

	for _, d := range deductions(lines) {
		level, err := stx.DecrementStock(ctx, d.itemID, d.qty)
		if err != nil {
			if errors.Is(err, inventory.ErrInsufficientStock) {
				return nil, &InsufficientStockError{ItemID: d.itemID, Name: lineName(lines, d.itemID)}
			}

			return nil, fmt.Errorf("deduct stock: %w", err)
		}

		names[d.itemID] = level.Name
	}

	sale := &Sale{
		Subtotal:     totals.Subtotal,
		TaxRate:      rate,
		TaxAmount:    totals.Tax,
		Total:        totals.Total,
		CashReceived: cashReceived,
		ChangeGiven:  cashReceived - totals.Total,
		Lines:        make([]LineItem, 0, len(lines)),
		Actor:        actorOrSystem(actor),
	}

	for _, l := range lines {
		sale.Lines = append(sale.Lines, LineItem{
			ItemID:    l.ItemID,
			Name:      names[l.ItemID],
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	if err := stx.InsertSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	for _, li := range sale.Lines {
		m := &inventory.Movement{
			ItemID:   li.ItemID,
			Type:     inventory.MovementIssue,
			Quantity: li.Quantity,
			Reason:   saleReason,
			Actor:    sale.Actor,
			SaleID:   &sale.ID,
		}
		if err := stx.InsertMovement(ctx, m); err != nil {
			return nil, fmt.Errorf("insert sale movement: %w", err)
		}
	}

	if err := stx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	return &Receipt{Sale: sale, LowStock: s.lowStock(ctx, sale)}, nil
}

// Sales lists committed sales in [from, to), oldest first.
func (s *Service) Sales(ctx context.Context, from, to time.Time) ([]*Sale, error) {
	return s.repo.ListSales(ctx, from, to)
}

// lowStock runs after commit. Failures are logged and never affect the sale.
func (s *Service) lowStock(ctx context.Context, sale *Sale) []LowStockNotice {
	threshold, err := s.settings.LowStockThreshold(ctx)
	if err != nil {
		slog.Warn("failed to read low stock threshold", "sale_id", sale.ID, "error", err)
		return nil
	}

	ids := make([]uuid.UUID, 0, len(sale.Lines))
	for _, li := range sale.Lines {
		if !slices.Contains(ids, li.ItemID) {
			ids = append(ids, li.ItemID)
		}
	}

	levels, err := s.repo.StockLevels(ctx, ids)
	if err != nil {
		slog.Warn("failed to read stock levels after sale", "sale_id", sale.ID, "error", err)
		return nil
	}

	var notices []LowStockNotice

	for _, lvl := range levels {
		if lvl.Quantity > threshold {
			continue
		}

		notices = append(notices, LowStockNotice{
			ItemID:    lvl.ItemID,
			Name:      lvl.Name,
			Quantity:  lvl.Quantity,
			Threshold: threshold,
		})
	}

	return notices
}

// mergeLines folds lines for the same item at the same price together, keeping first-seen order.
func mergeLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))

	for _, l := range lines {
		idx := slices.IndexFunc(out, func(o Line) bool {
			return o.ItemID == l.ItemID && o.UnitPrice == l.UnitPrice
		})
		if idx >= 0 {
			out[idx].Quantity += l.Quantity
			continue
		}

		out = append(out, l)
	}

	return out
}

type deduction struct {
	itemID uuid.UUID
	qty    int64
}

// deductions totals quantities per item, ordered by item id so concurrent checkouts lock rows in the same order.
func deductions(lines []Line) []deduction {
	var out []deduction

	for _, l := range lines {
		idx := slices.IndexFunc(out, func(d deduction) bool { return d.itemID == l.ItemID })
		if idx >= 0 {
			out[idx].qty += l.Quantity
			continue
		}

		out = append(out, deduction{itemID: l.ItemID, qty: l.Quantity})
	}

	slices.SortFunc(out, func(a, b deduction) int {
		return bytes.Compare(a.itemID[:], b.itemID[:])
	})

	return out
}

func lineName(lines []Line, itemID uuid.UUID) string {
	for _, l := range lines {
		if l.ItemID == itemID {
			return l.Name
		}
	}

	return ""
}

func actorOrSystem(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return inventory.SystemActor
	}

	return actor
}
