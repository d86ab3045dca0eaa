package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateItem(ctx context.Context, item *Item, initial *Movement) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, filter ListFilter) ([]*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ListMovements(ctx context.Context, filter MovementFilter) ([]*Movement, error)
	Summary(ctx context.Context, expiringBy time.Time) (*Summary, error)

	BeginMovement(ctx context.Context, itemID uuid.UUID) (MovementTx, error)
}

// MovementTx holds a row lock on one item until Commit or Rollback.
type MovementTx interface {
	Item() *Item
	UpdateItem(ctx context.Context, item *Item) error
	InsertMovement(ctx context.Context, movement *Movement) error
	Commit() error
	Rollback() error
}

// ExpiryWindow is how far ahead an expiry date counts as "expiring soon".
const ExpiryWindow = 7 * 24 * time.Hour

const (
	DefaultMovementLimit = 30
	MaxMovementLimit     = 200
	SystemActor          = "system"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for expiry calculations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone whose calendar date starts the expiry window.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		validate: newValidator(),
		loc:      time.Local,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ItemParams carries the editable fields of an item.
type ItemParams struct {
	Name         string     `json:"name" validate:"required,max=100"`
	CategoryID   uuid.UUID  `json:"category_id"`
	Quantity     int64      `json:"quantity" validate:"gte=0"`
	Unit         string     `json:"unit" validate:"required,max=20"`
	CostPrice    int64      `json:"cost_price" validate:"gte=0"`
	SellingPrice int64      `json:"selling_price" validate:"gte=0"`
	ReorderLevel int64      `json:"reorder_level" validate:"gte=0"`
	Supplier     string     `json:"supplier" validate:"max=100"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

type ListFilter struct {
	CategoryID *uuid.UUID
	Status     *Status
	ExpiringBy time.Time // set by the service; used by StatusExpiring
}

type MovementFilter struct {
	ItemID *uuid.UUID
	Since  *time.Time
	Until  *time.Time
	Limit  int // 0 means no limit
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// AddItem creates an item. A positive starting quantity is recorded as a receive movement.
func (s *Service) AddItem(ctx context.Context, params ItemParams, actor string) (*Item, error) {
	params = trimParams(params)
	if err := s.validateParams(params); err != nil {
		return nil, err
	}

	item := &Item{
		Name:         params.Name,
		CategoryID:   params.CategoryID,
		Quantity:     params.Quantity,
		Unit:         params.Unit,
		CostPrice:    params.CostPrice,
		SellingPrice: params.SellingPrice,
		ReorderLevel: params.ReorderLevel,
		Supplier:     params.Supplier,
		ExpiryDate:   dateOnly(params.ExpiryDate),
	}

	var initial *Movement
	if item.Quantity > 0 {
		initial = &Movement{
			Type:     MovementReceive,
			Quantity: item.Quantity,
			Reason:   "initial stock",
			Actor:    actorOrSystem(actor),
		}
	}

	if err := s.repo.CreateItem(ctx, item, initial); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem rewrites an item's fields. A changed quantity goes through the ledger as an adjustment.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, params ItemParams, actor string) (*Item, error) {
	params = trimParams(params)
	if err := s.validateParams(params); err != nil {
		return nil, err
	}

	mtx, err := s.repo.BeginMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	defer mtx.Rollback()

	item := mtx.Item()

	adjustment, next, err := planMovement(item.Quantity, MovementParams{
		ItemID:   id,
		Type:     MovementAdjust,
		Quantity: params.Quantity,
		Actor:    actor,
	})
	if err != nil {
		return nil, err
	}

	item.Name = params.Name
	item.CategoryID = params.CategoryID
	item.Quantity = next
	item.Unit = params.Unit
	item.CostPrice = params.CostPrice
	item.SellingPrice = params.SellingPrice
	item.ReorderLevel = params.ReorderLevel
	item.Supplier = params.Supplier
	item.ExpiryDate = dateOnly(params.ExpiryDate)

	if err := mtx.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if adjustment != nil {
		if err := mtx.InsertMovement(ctx, adjustment); err != nil {
			return nil, fmt.Errorf("record adjustment: %w", err)
		}
	}

	if err := mtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit item update: %w", err)
	}

	return item, nil
}

// DeleteItem removes the item and its movement history.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, filter ListFilter) ([]*Item, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}

	filter.ExpiringBy = s.expiringBy()

	return s.repo.ListItems(ctx, filter)
}

// LowStock lists items at or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]*Item, error) {
	return s.ListItems(ctx, ListFilter{Status: new(StatusLowStock)})
}

// ExpiringSoon lists items whose expiry date falls within ExpiryWindow, including those already expired.
func (s *Service) ExpiringSoon(ctx context.Context) ([]*Item, error) {
	return s.ListItems(ctx, ListFilter{Status: new(StatusExpiring)})
}

// RecentMovements returns the newest ledger rows first.
func (s *Service) RecentMovements(ctx context.Context, limit int) ([]*Movement, error) {
	switch {
	case limit <= 0:
		limit = DefaultMovementLimit
	case limit > MaxMovementLimit:
		limit = MaxMovementLimit
	}

	return s.repo.ListMovements(ctx, MovementFilter{Limit: limit})
}

// Movements returns ledger rows matching the filter, newest first.
func (s *Service) Movements(ctx context.Context, filter MovementFilter) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, filter)
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	return s.repo.Summary(ctx, s.expiringBy())
}

func (s *Service) expiringBy() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return day.Add(ExpiryWindow)
}

func trimParams(p ItemParams) ItemParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Supplier = strings.TrimSpace(p.Supplier)

	return p
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	return new(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

func actorOrSystem(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return SystemActor
	}

	return actor
}
