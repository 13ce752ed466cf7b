package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/auditlog"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/bannerkeeper/internal/storage"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock frozen at Monday 2025-01-06 12:00 UTC that can
// be moved forward by the test.
type fixedClock struct {
	t time.Time
}

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	db       *sql.DB
	clock    *fixedClock
	accounts *AccountService
	catalog  *CatalogService
	admin    *AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := storage.OpenTest(t)
	m := repomanager.NewSQLiteRepositoryManager()
	c := newClock()
	return &env{
		db:       db,
		clock:    c,
		accounts: NewAccountService(db, m, c.Now),
		catalog:  NewCatalogService(db, m, c.Now),
		admin:    NewAdminService(db, m, c.Now, 10),
	}
}

func (e *env) register(t *testing.T, identity string, admin bool) {
	t.Helper()
	ok, err := e.accounts.Register(context.Background(), identity, []byte("pw-"+identity), admin)
	require.NoError(t, err)
	require.True(t, ok)
}

func (e *env) auditActions(t *testing.T, identity string) []models.Action {
	t.Helper()
	rows, err := e.db.Query(`SELECT action FROM audit_log WHERE identity = ? ORDER BY id`, identity)
	require.NoError(t, err)
	defer rows.Close()

	var out []models.Action
	for rows.Next() {
		var a string
		require.NoError(t, rows.Scan(&a))
		out = append(out, models.Action(a))
	}
	require.NoError(t, rows.Err())
	return out
}

func banner(title string, day models.Weekday) models.Banner {
	return models.Banner{
		Image:           []byte{1, 2, 3},
		Title:           title,
		ReleaseDay:      day,
		ReleaseTime:     "18:00",
		CurrentEpisodes: 1,
		TotalEpisodes:   12,
	}
}

// failingAuditManager hands out a real manager except for an audit log that
// always fails.
type failingAuditManager struct {
	repomanager.RepositoryManager
}

func (m failingAuditManager) AuditLog(db dbx.DBTX) auditlog.Repository {
	return failingAudit{}
}

type failingAudit struct{}

func (failingAudit) Append(ctx context.Context, identity string, action models.Action, at time.Time) error {
	return errors.New("disk full")
}

func (failingAudit) Since(ctx context.Context, cutoff time.Time) ([]models.AuditEntry, error) {
	return nil, errors.New("disk full")
}
