package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Days are stored as DATE; the calendar date is taken from the day's own location.
func dateParam(day time.Time) string {
	return day.Format(time.DateOnly)
}

const settlementColumns = `opening_cash_float, total_sales_cash, expected_cash, actual_cash, discrepancy, created_at, updated_at`

func (s *Store) GetSettlement(ctx context.Context, day time.Time) (*settlement.DailySettlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM daily_settlements WHERE settlement_date = $1::date`

	st, err := scanSettlement(s.db.QueryRowContext(ctx, query, dateParam(day)), day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrNotFound
		}

		return nil, fmt.Errorf("getting settlement: %w: %w", database.ErrUnavailable, err)
	}

	return st, nil
}

// SaveOpeningFloat upserts the float without touching actual_cash, so a concurrent count is never lost.
func (s *Store) SaveOpeningFloat(ctx context.Context, day time.Time, amount, sales int64) (*settlement.DailySettlement, error) {
	query := `
		INSERT INTO daily_settlements (
			settlement_date, opening_cash_float, total_sales_cash, expected_cash, created_at, updated_at
		)
		VALUES ($1::date, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (settlement_date) DO UPDATE SET
			opening_cash_float = EXCLUDED.opening_cash_float,
			total_sales_cash = EXCLUDED.total_sales_cash,
			expected_cash = EXCLUDED.expected_cash,
			discrepancy = daily_settlements.actual_cash - EXCLUDED.expected_cash,
			updated_at = NOW()
		RETURNING ` + settlementColumns

	st, err := scanSettlement(s.db.QueryRowContext(ctx, query, dateParam(day), amount, sales, amount+sales), day)
	if err != nil {
		return nil, fmt.Errorf("upserting opening float: %w: %w", database.ErrUnavailable, err)
	}

	return st, nil
}

// SaveActualCash updates the counted cash against the float already stored for the day.
func (s *Store) SaveActualCash(ctx context.Context, day time.Time, actual, sales int64) (*settlement.DailySettlement, error) {
	query := `
		UPDATE daily_settlements SET
			actual_cash = $2::bigint,
			total_sales_cash = $3::bigint,
			expected_cash = opening_cash_float + $3::bigint,
			discrepancy = $2::bigint - (opening_cash_float + $3::bigint),
			updated_at = NOW()
		WHERE settlement_date = $1::date
		RETURNING ` + settlementColumns

	st, err := scanSettlement(s.db.QueryRowContext(ctx, query, dateParam(day), actual, sales), day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settlement.ErrNotFound
		}

		return nil, fmt.Errorf("recording actual cash: %w: %w", database.ErrUnavailable, err)
	}

	return st, nil
}

func scanSettlement(row *sql.Row, day time.Time) (*settlement.DailySettlement, error) {
	var (
		st          = settlement.DailySettlement{Date: day}
		actual      sql.NullInt64
		discrepancy sql.NullInt64
	)

	err := row.Scan(
		&st.OpeningCashFloat,
		&st.TotalSalesCash,
		&st.ExpectedCash,
		&actual,
		&discrepancy,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if actual.Valid {
		st.ActualCash = &actual.Int64
	}

	if discrepancy.Valid {
		st.Discrepancy = &discrepancy.Int64
	}

	return &st, nil
}

func (s *Store) SalesTotal(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)::BIGINT FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing sales: %w: %w", database.ErrUnavailable, err)
	}

	return total, nil
}
