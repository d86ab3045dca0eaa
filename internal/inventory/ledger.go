package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	reasonAdjustIncrease = "stocktake adjustment (increase)"
	reasonAdjustDecrease = "stocktake adjustment (decrease)"
)

type MovementParams struct {
	ItemID uuid.UUID
	Type   MovementType
	// Quantity is the amount moved, or the new absolute quantity for MovementAdjust.
	Quantity int64
	Reason   string
	Actor    string
}

type MovementResult struct {
	Movement         *Movement // nil when an adjustment matched the current quantity
	PreviousQuantity int64
	Quantity         int64
	ReorderLevel     int64
	BelowReorder     bool
}

// ApplyMovement changes an item's quantity and appends the matching ledger row in one unit of work.
func (s *Service) ApplyMovement(ctx context.Context, params MovementParams) (*MovementResult, error) {
	if err := checkMovement(params); err != nil {
		return nil, err
	}

	mtx, err := s.repo.BeginMovement(ctx, params.ItemID)
	if err != nil {
		return nil, err
	}
	defer mtx.Rollback()

	item := mtx.Item()
	previous := item.Quantity

	movement, next, err := planMovement(previous, params)
	if err != nil {
		return nil, err
	}

	result := &MovementResult{
		PreviousQuantity: previous,
		Quantity:         next,
		ReorderLevel:     item.ReorderLevel,
		BelowReorder:     next <= item.ReorderLevel,
	}

	if movement == nil {
		return result, nil
	}

	item.Quantity = next
	if err := mtx.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update quantity: %w", err)
	}

	if err := mtx.InsertMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("insert movement: %w", err)
	}

	if err := mtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit movement: %w", err)
	}

	movement.ItemName = item.Name
	movement.ItemUnit = item.Unit
	result.Movement = movement

	return result, nil
}

func checkMovement(p MovementParams) error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, p.Type)
	}

	if p.Type == MovementAdjust {
		if p.Quantity < 0 {
			return fmt.Errorf("%w: adjusted quantity must not be negative", ErrInvalidInput)
		}

		return nil
	}

	if p.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	return nil
}

// planMovement works out the ledger row and resulting quantity for a request against the current quantity.
// A nil movement means nothing changes.
func planMovement(current int64, p MovementParams) (*Movement, int64, error) {
	if err := checkMovement(p); err != nil {
		return nil, 0, err
	}

	m := &Movement{
		ItemID: p.ItemID,
		Type:   p.Type,
		Reason: strings.TrimSpace(p.Reason),
		Actor:  actorOrSystem(p.Actor),
	}

	switch p.Type {
	case MovementReceive:
		m.Quantity = p.Quantity
	case MovementIssue, MovementDispose:
		if p.Quantity > current {
			return nil, 0, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, p.Quantity, current)
		}

		m.Quantity = p.Quantity
	case MovementAdjust:
		delta := p.Quantity - current
		if delta == 0 {
			return nil, current, nil
		}

		m.Type = MovementReceive
		m.Quantity = delta
		fallback := reasonAdjustIncrease

		if delta < 0 {
			m.Type = MovementDispose
			m.Quantity = -delta
			fallback = reasonAdjustDecrease
		}

		if m.Reason == "" {
			m.Reason = fallback
		}
	}

	if m.Reason == "" {
		m.Reason = p.Type.Label()
	}

	return m, current + m.Delta(), nil
}
