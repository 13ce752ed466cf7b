package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, identity string, action models.Action, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (identity, action, created_at) VALUES (?, ?, ?)`,
		identity, string(action), timex.FormatTimestamp(at))
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Since(ctx context.Context, cutoff time.Time) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, identity, action, created_at FROM audit_log
		 WHERE created_at >= ?
		 ORDER BY id`,
		timex.FormatTimestamp(cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to select audit entries: %w", err)
	}
	defer rows.Close()

	var result []models.AuditEntry
	for rows.Next() {
		var (
			e         models.AuditEntry
			action    string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Identity, &action, &createdAt); err != nil {
			return nil, err
		}
		e.Action = models.Action(action)
		if e.CreatedAt, err = timex.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("bad audit timestamp %q: %w", createdAt, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
