package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
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

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `INSERT INTO accounts (identity, secret_hash, salt, role, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		account.Identity, account.SecretHash, account.Salt, string(account.Role),
		timex.FormatTimestamp(account.CreatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByIdentity(ctx context.Context, identity string) (*models.Account, error) {
	query := `SELECT identity, secret_hash, salt, role, created_at FROM accounts
		WHERE identity = ?`

	var (
		account   models.Account
		role      string
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, query, identity).
		Scan(&account.Identity, &account.SecretHash, &account.Salt, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Role = models.Role(role)
	if account.CreatedAt, err = timex.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at for %s: %w", identity, err)
	}
	return &account, nil
}
