package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSetting(ctx context.Context, key settings.Key) (*settings.Setting, error) {
	st := settings.Setting{Key: key}

	err := s.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM settings WHERE key = $1`, key,
	).Scan(&st.Value, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settings.ErrNotFound
		}

		return nil, fmt.Errorf("getting setting: %w: %w", database.ErrUnavailable, err)
	}

	return &st, nil
}

func (s *Store) UpsertSetting(ctx context.Context, key settings.Key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting setting: %w: %w", database.ErrUnavailable, err)
	}

	return nil
}

func (s *Store) ListSettings(ctx context.Context) ([]settings.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w: %w", database.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []settings.Setting

	for rows.Next() {
		var st settings.Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}

		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w: %w", database.ErrUnavailable, err)
	}

	return out, nil
}
