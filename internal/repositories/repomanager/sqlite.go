// Package repomanager provides a concrete RepositoryManager for SQLite,
// wiring together repository constructors and schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/auditlog"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/banners"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/flagged"
	"github.com/dmitrijs2005/bannerkeeper/internal/storage"
)

// SQLiteRepositoryManager vends SQLite-backed repositories bound to either
// the pool or a transaction.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Banners(db dbx.DBTX) banners.Repository {
	return banners.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) AuditLog(db dbx.DBTX) auditlog.Repository {
	return auditlog.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Flagged(db dbx.DBTX) flagged.Repository {
	return flagged.NewSQLiteRepository(db)
}

// runMigrations is a seam for testing.
var runMigrations = storage.RunMigrations

// RunMigrations applies the embedded schema migrations to db.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
