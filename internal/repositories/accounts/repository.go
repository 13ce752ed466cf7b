// Package accounts persists registered accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

type Repository interface {
	// Create inserts a new account. An existing identity yields common.ErrConflict.
	Create(ctx context.Context, account *models.Account) error
	// GetByIdentity returns common.ErrorNotFound when no account matches.
	GetByIdentity(ctx context.Context, identity string) (*models.Account, error)
}
