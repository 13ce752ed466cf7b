package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/cryptox"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
)

// AccountService registers accounts and verifies credentials.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, now func() time.Time) *AccountService {
	return &AccountService{db: db, repomanager: m, now: now}
}

// Register creates an account. It reports false without an error when the
// identity is already taken.
func (s *AccountService) Register(ctx context.Context, identity string, secret []byte, isAdministrator bool) (bool, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return false, fmt.Errorf("%w: identity is empty", common.ErrorValidation)
	}

	salt := cryptox.NewSalt()
	account := &models.Account{
		Identity:   identity,
		SecretHash: cryptox.HashSecret(secret, salt),
		Salt:       salt,
		Role:       models.RoleFor(isAdministrator),
		CreatedAt:  s.now(),
	}

	if err := s.repomanager.Accounts(s.db).Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("error creating account: %w", err)
	}
	return true, nil
}

// Login checks the credentials. Wrong credentials are reported through the
// result; the error is reserved for storage failures.
func (s *AccountService) Login(ctx context.Context, identity string, secret []byte) (models.LoginResult, error) {
	account, err := s.repomanager.Accounts(s.db).GetByIdentity(ctx, strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.LoginFailed(common.ReasonUserNotFound), nil
		}
		return models.LoginResult{}, fmt.Errorf("error loading account: %w", err)
	}

	if !cryptox.VerifySecret(secret, account.Salt, account.SecretHash) {
		return models.LoginFailed(common.ReasonInvalidPassword), nil
	}
	return models.LoginSucceeded(account.Role), nil
}

// Account returns the stored account for identity.
func (s *AccountService) Account(ctx context.Context, identity string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByIdentity(ctx, identity)
}
