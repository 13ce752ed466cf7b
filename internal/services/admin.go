package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
)

// AdminService exposes the administrator-only views. Callers without the
// administrator role get common.ErrorUnauthorized.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	threshold   int
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, now func() time.Time, threshold int) *AdminService {
	return &AdminService{db: db, repomanager: m, now: now, threshold: threshold}
}

// FlaggedAccounts lists every flagged account in the order it was flagged.
func (s *AdminService) FlaggedAccounts(ctx context.Context, actor string) ([]models.FlaggedAccount, error) {
	if err := s.requireAdministrator(ctx, actor); err != nil {
		return nil, err
	}
	return s.repomanager.Flagged(s.db).List(ctx)
}

// SimulateAttack writes count audit entries for target in one burst so the
// next monitor pass sees it over the threshold. An empty target means the
// actor; a non-positive count means the monitor threshold. It returns the
// number of entries written.
func (s *AdminService) SimulateAttack(ctx context.Context, actor, target string, count int) (int, error) {
	if err := s.requireAdministrator(ctx, actor); err != nil {
		return 0, err
	}
	if target == "" {
		target = actor
	}
	if count <= 0 {
		count = s.threshold
	}

	if _, err := s.repomanager.Accounts(s.db).GetByIdentity(ctx, target); err != nil {
		return 0, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		audit := s.repomanager.AuditLog(tx)
		for i := 0; i < count; i++ {
			if err := audit.Append(ctx, target, models.ActionAdd, s.now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error simulating attack: %w", err)
	}
	return count, nil
}

func (s *AdminService) requireAdministrator(ctx context.Context, actor string) error {
	account, err := s.repomanager.Accounts(s.db).GetByIdentity(ctx, actor)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	}
	if !account.IsAdministrator() {
		return common.ErrorUnauthorized
	}
	return nil
}
