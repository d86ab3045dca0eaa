package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectItemColumns = `
	i.id, i.name, i.category_id, c.name, i.quantity, i.unit, i.cost_price, i.selling_price,
	i.reorder_level, i.supplier, i.expiry_date, i.created_at, i.updated_at
`

// scanItem reads a row in selectItemColumns order.
func scanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	var supplier sql.NullString

	if err := s.Scan(
		&item.ID, &item.Name, &item.CategoryID, &item.CategoryName, &item.Quantity, &item.Unit,
		&item.CostPrice, &item.SellingPrice, &item.ReorderLevel, &supplier, &item.ExpiryDate,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	item.Supplier = supplier.String

	return &item, nil
}

const selectMovementColumns = `
	m.id, m.item_id, i.name, i.unit, m.type, m.quantity, m.reason, m.actor, m.sale_id, m.created_at
`

func scanMovement(s scanner) (*inventory.Movement, error) {
	var m inventory.Movement

	var typeStr string

	if err := s.Scan(
		&m.ID, &m.ItemID, &m.ItemName, &m.ItemUnit, &typeStr, &m.Quantity, &m.Reason, &m.Actor,
		&m.SaleID, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.Type = inventory.MovementType(typeStr)

	return &m, nil
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return inventory.ErrDuplicateItem
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: unknown category", inventory.ErrInvalidInput)
	case database.IsCheckViolation(err):
		return fmt.Errorf("%w: %w", inventory.ErrInvalidInput, err)
	}

	return fmt.Errorf("%s: %w: %w", op, database.ErrUnavailable, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) ListCategories(ctx context.Context) ([]*inventory.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []*inventory.Category

	for rows.Next() {
		var c inventory.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		out = append(out, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w: %w", database.ErrUnavailable, err)
	}

	return out, nil
}

// CreateItem inserts the item and, when given, its opening movement in one transaction.
func (s *Store) CreateItem(ctx context.Context, item *inventory.Item, initial *inventory.Movement) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %w", database.ErrUnavailable, err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO items (name, category_id, quantity, unit, cost_price, selling_price, reorder_level, supplier, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at, (SELECT name FROM categories WHERE id = $2)
	`

	err = dbTx.QueryRowContext(ctx, query,
		item.Name,
		item.CategoryID,
		item.Quantity,
		item.Unit,
		item.CostPrice,
		item.SellingPrice,
		item.ReorderLevel,
		nullString(item.Supplier),
		item.ExpiryDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt, &item.CategoryName)
	if err != nil {
		return mapWriteError("creating item", err)
	}

	if initial != nil {
		initial.ItemID = item.ID
		initial.ItemName = item.Name
		initial.ItemUnit = item.Unit

		if err := insertMovement(ctx, dbTx, initial); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w: %w", database.ErrUnavailable, err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w: %w", database.ErrUnavailable, err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context, filter inventory.ListFilter) ([]*inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND i.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Status != nil {
		switch *filter.Status {
		case inventory.StatusLowStock:
			query += " AND i.quantity <= i.reorder_level"
		case inventory.StatusNormal:
			query += " AND i.quantity > i.reorder_level"
		case inventory.StatusExpiring:
			query += fmt.Sprintf(" AND i.expiry_date IS NOT NULL AND i.expiry_date <= $%d::date", argIdx)

			args = append(args, filter.ExpiringBy.Format(time.DateOnly))
			argIdx++
		}
	}

	if filter.Status != nil && *filter.Status == inventory.StatusExpiring {
		query += " ORDER BY i.expiry_date ASC, i.name ASC"
	} else {
		query += " ORDER BY c.name ASC, i.name ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w: %w", database.ErrUnavailable, err)
	}

	return items, nil
}

// DeleteItem removes the item; its movements go with it through ON DELETE CASCADE.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w: %w", database.ErrUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w: %w", database.ErrUnavailable, err)
	}

	if n == 0 {
		return inventory.ErrNotFound
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, error) {
	query := `SELECT ` + selectMovementColumns + `
		FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.ItemID != nil {
		query += fmt.Sprintf(" AND m.item_id = $%d", argIdx)

		args = append(args, *filter.ItemID)
		argIdx++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", argIdx)

		args = append(args, *filter.Since)
		argIdx++
	}

	if filter.Until != nil {
		query += fmt.Sprintf(" AND m.created_at < $%d", argIdx)

		args = append(args, *filter.Until)
		argIdx++
	}

	query += " ORDER BY m.created_at DESC, m.id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []*inventory.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements: %w: %w", database.ErrUnavailable, err)
	}

	return out, nil
}

func (s *Store) Summary(ctx context.Context, expiringBy time.Time) (*inventory.Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE quantity <= reorder_level),
			COUNT(*) FILTER (WHERE expiry_date IS NOT NULL AND expiry_date <= $1::date),
			COALESCE(SUM(quantity * cost_price), 0)::BIGINT
		FROM items
	`

	var sum inventory.Summary

	err := s.db.QueryRowContext(ctx, query, expiringBy.Format(time.DateOnly)).Scan(
		&sum.TotalItems, &sum.LowStockItems, &sum.ExpiringItems, &sum.StockValue,
	)
	if err != nil {
		return nil, fmt.Errorf("summarising items: %w: %w", database.ErrUnavailable, err)
	}

	return &sum, nil
}

type movementTx struct {
	tx   *sql.Tx
	item *inventory.Item
}

// BeginMovement opens a transaction and locks the item row with SELECT ... FOR UPDATE.
func (s *Store) BeginMovement(ctx context.Context, itemID uuid.UUID) (inventory.MovementTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning movement tx: %w: %w", database.ErrUnavailable, err)
	}

	query := `SELECT ` + selectItemColumns + `
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1
		FOR UPDATE OF i`

	item, err := scanItem(dbTx.QueryRowContext(ctx, query, itemID))
	if err != nil {
		dbTx.Rollback()

		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("locking item: %w: %w", database.ErrUnavailable, err)
	}

	return &movementTx{tx: dbTx, item: item}, nil
}

func (mtx *movementTx) Item() *inventory.Item { return mtx.item }
func (mtx *movementTx) Commit() error         { return mtx.tx.Commit() }
func (mtx *movementTx) Rollback() error       { return mtx.tx.Rollback() }

func (mtx *movementTx) UpdateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		UPDATE items
		SET name = $1, category_id = $2, quantity = $3, unit = $4, cost_price = $5, selling_price = $6,
			reorder_level = $7, supplier = $8, expiry_date = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at, (SELECT name FROM categories WHERE id = $2)
	`

	err := mtx.tx.QueryRowContext(ctx, query,
		item.Name,
		item.CategoryID,
		item.Quantity,
		item.Unit,
		item.CostPrice,
		item.SellingPrice,
		item.ReorderLevel,
		nullString(item.Supplier),
		item.ExpiryDate,
		item.ID,
	).Scan(&item.UpdatedAt, &item.CategoryName)
	if err != nil {
		return mapWriteError("updating item", err)
	}

	return nil
}

func (mtx *movementTx) InsertMovement(ctx context.Context, m *inventory.Movement) error {
	return insertMovement(ctx, mtx.tx, m)
}

func insertMovement(ctx context.Context, q queryer, m *inventory.Movement) error {
	query := `
		INSERT INTO movements (item_id, type, quantity, reason, actor, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
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
