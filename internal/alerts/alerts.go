// Package alerts reports items that need attention on a schedule.
package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/till/internal/inventory"
)

//go:generate mockgen -source=alerts.go -destination=inventory_mock.go -package=alerts
type Inventory interface {
	LowStock(ctx context.Context) ([]*inventory.Item, error)
	ExpiringSoon(ctx context.Context) ([]*inventory.Item, error)
}

// Digest lists the items to restock or use up.
type Digest struct {
	LowStock []*inventory.Item
	Expiring []*inventory.Item
}

func (d *Digest) Empty() bool {
	return len(d.LowStock) == 0 && len(d.Expiring) == 0
}

type Service struct {
	inventory Inventory
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(inv Inventory, opts ...Option) *Service {
	s := &Service{inventory: inv, logger: slog.Default()}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Digest(ctx context.Context) (*Digest, error) {
	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing low stock: %w", err)
	}

	expiring, err := s.inventory.ExpiringSoon(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expiring items: %w", err)
	}

	return &Digest{LowStock: low, Expiring: expiring}, nil
}

// Run builds the digest and writes one log line per item.
func (s *Service) Run(ctx context.Context) error {
	d, err := s.Digest(ctx)
	if err != nil {
		s.logger.Error("failed to build alert digest", "error", err)
		return err
	}

	if d.Empty() {
		s.logger.Info("alert digest: nothing to report")
		return nil
	}

	for _, item := range d.LowStock {
		s.logger.Warn("low stock",
			"item", item.Name,
			"quantity", item.Quantity,
			"unit", item.Unit,
			"reorder_level", item.ReorderLevel,
			"supplier", item.Supplier,
		)
	}

	for _, item := range d.Expiring {
		var expiry string
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format(time.DateOnly)
		}

		s.logger.Warn("expiring soon", "item", item.Name, "quantity", item.Quantity, "expiry_date", expiry)
	}

	s.logger.Info("alert digest sent", "low_stock", len(d.LowStock), "expiring", len(d.Expiring))

	return nil
}
