package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/accounts"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/auditlog"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/banners"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/flagged"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Banners(db dbx.DBTX) banners.Repository
	AuditLog(db dbx.DBTX) auditlog.Repository
	Flagged(db dbx.DBTX) flagged.Repository
}
