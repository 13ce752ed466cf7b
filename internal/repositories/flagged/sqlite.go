package flagged

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

func (r *SQLiteRepository) Flag(ctx context.Context, identity string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO flagged_accounts (identity, flagged_at) VALUES (?, ?)
		 ON CONFLICT (identity) DO NOTHING`,
		identity, timex.FormatTimestamp(at))
	if err != nil {
		return false, fmt.Errorf("failed to flag account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.FlaggedAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT identity, flagged_at FROM flagged_accounts ORDER BY flagged_at, identity`)
	if err != nil {
		return nil, fmt.Errorf("failed to select flagged accounts: %w", err)
	}
	defer rows.Close()

	result := make([]models.FlaggedAccount, 0)
	for rows.Next() {
		var (
			f  models.FlaggedAccount
			at string
		)
		if err := rows.Scan(&f.Identity, &at); err != nil {
			return nil, err
		}
		if f.FlaggedAt, err = timex.ParseTimestamp(at); err != nil {
			return nil, fmt.Errorf("bad flag timestamp %q: %w", at, err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
