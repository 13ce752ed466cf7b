package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTest opens a migrated database in a fresh temporary directory and
// closes it when the test ends.
func OpenTest(t testing.TB) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
