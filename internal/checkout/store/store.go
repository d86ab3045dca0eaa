package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type saleTx struct {
	tx *sql.Tx
}

func (s *Store) BeginSale(ctx context.Context) (checkout.SaleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sale tx: %w: %w", database.ErrUnavailable, err)
	}

	return &saleTx{tx: dbTx}, nil
}

func (stx *saleTx) Commit() error   { return stx.tx.Commit() }
func (stx *saleTx) Rollback() error { return stx.tx.Rollback() }

// DecrementStock is a conditional update; it touches no row when stock is short.
func (stx *saleTx) DecrementStock(ctx context.Context, itemID uuid.UUID, qty int64) (*checkout.StockLevel, error) {
	query := `
		UPDATE items
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1
		RETURNING name, quantity
	`

	level := checkout.StockLevel{ItemID: itemID}

	err := stx.tx.QueryRowContext(ctx, query, qty, itemID).Scan(&level.Name, &level.Quantity)
	if err == nil {
		return &level, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decrementing stock: %w: %w", database.ErrUnavailable, err)
	}

	var exists bool
	if err := stx.tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking item: %w: %w", database.ErrUnavailable, err)
	}

	if !exists {
		return nil, inventory.ErrNotFound
	}

	return nil, inventory.ErrInsufficientStock
}

func (stx *saleTx) InsertSale(ctx context.Context, sale *checkout.Sale) error {
	lines, err := json.Marshal(sale.Lines)
	if err != nil {
		return fmt.Errorf("encoding line items: %w", err)
	}

	query := `
		INSERT INTO sales (subtotal, tax_rate, tax_amount, total_amount, cash_received, change_given, line_items, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = stx.tx.QueryRowContext(ctx, query,
		sale.Subtotal,
		sale.TaxRate,
		sale.TaxAmount,
		sale.Total,
		sale.CashReceived,
		sale.ChangeGiven,
		string(lines),
		sale.Actor,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting sale: %w: %w", database.ErrUnavailable, err)
	}

	return nil
}

func (stx *saleTx) InsertMovement(ctx context.Context, m *inventory.Movement) error {
	query := `
		INSERT INTO movements (item_id, type, quantity, reason, actor, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := stx.tx.QueryRowContext(ctx, query,
		m.ItemID,
		m.Type,
		m.Quantity,
		m.Reason,
		m.Actor,
		m.SaleID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movement: %w: %w", database.ErrUnavailable, err)
	}

	return nil
}

func (s *Store) StockLevels(ctx context.Context, itemIDs []uuid.UUID) ([]checkout.StockLevel, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, quantity FROM items WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("reading stock levels: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []checkout.StockLevel

	for rows.Next() {
		var lvl checkout.StockLevel
		if err := rows.Scan(&lvl.ItemID, &lvl.Name, &lvl.Quantity); err != nil {
			return nil, fmt.Errorf("scanning stock level: %w", err)
		}

		out = append(out, lvl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock levels: %w: %w", database.ErrUnavailable, err)
	}

	return out, nil
}

func (s *Store) ListSales(ctx context.Context, from, to time.Time) ([]*checkout.Sale, error) {
	query := `
		SELECT id, subtotal, tax_rate, tax_amount, total_amount, cash_received, change_given, line_items, actor, created_at
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var sales []*checkout.Sale

	for rows.Next() {
		var (
			sale  checkout.Sale
			lines []byte
		)

		if err := rows.Scan(
			&sale.ID, &sale.Subtotal, &sale.TaxRate, &sale.TaxAmount, &sale.Total,
			&sale.CashReceived, &sale.ChangeGiven, &lines, &sale.Actor, &sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		if err := json.Unmarshal(lines, &sale.Lines); err != nil {
			return nil, fmt.Errorf("decoding line items of sale %s: %w", sale.ID, err)
		}

		sales = append(sales, &sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales: %w: %w", database.ErrUnavailable, err)
	}

	return sales, nil
}
