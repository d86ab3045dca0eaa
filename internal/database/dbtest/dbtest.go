// Package dbtest opens a migrated Postgres database for store integration tests.
package dbtest

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/database"
)

const envURL = "TEST_DATABASE_URL"

// Open connects to TEST_DATABASE_URL, applies migrations and empties every table.
// The test is skipped when the variable is unset.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(envURL)
	if url == "" {
		t.Skipf("%s not set", envURL)
	}

	migrationURL := strings.Replace(strings.Replace(url, "postgresql://", "pgx5://", 1), "postgres://", "pgx5://", 1)
	require.NoError(t, database.Initialize(migrationURL))

	db, err := database.New(url)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`TRUNCATE movements, items, sales, daily_settlements, settings RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

// Category returns the id of the named category, creating it if needed.
func Category(t *testing.T, db *sql.DB, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID

	err := db.QueryRow(`
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	require.NoError(t, err)

	return id
}
