package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"file:app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		DSN("app.db"))
	assert.Equal(t, "file:x.db?mode=ro", DSN("file:x.db?mode=ro"))
}

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"accounts", "banners", "audit_log", "flagged_accounts", "goose_db_version"} {
		assert.True(t, tableExists(t, db, table), "missing table %s", table)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys must be enforced")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
}

func TestOpen_MigrationError(t *testing.T) {
	orig := gooseUp
	gooseUp = func(ctx context.Context, p *goose.Provider) error { return errors.New("boom") }
	t.Cleanup(func() { gooseUp = orig })

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run migrations: boom")
}
