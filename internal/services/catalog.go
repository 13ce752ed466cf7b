package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/dbx"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
)

// CatalogService manages the banners of one owner at a time. Each mutation
// and its audit entry are committed together or not at all.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, now func() time.Time) *CatalogService {
	return &CatalogService{db: db, repomanager: m, now: now}
}

// AddBanner stores b under owner. A banner with the same title already
// owned by owner yields common.ErrConflict.
func (s *CatalogService) AddBanner(ctx context.Context, owner string, b models.Banner) error {
	day, err := models.ParseWeekday(string(b.ReleaseDay))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is empty", common.ErrorValidation)
	}
	b.ReleaseDay = day
	b.Owner = owner

	return s.mutate(ctx, owner, models.ActionAdd, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Banners(tx).Create(ctx, &b)
	})
}

// DeleteBanner removes owner's banner called title. A missing banner is
// not an error; the attempt is still audited.
func (s *CatalogService) DeleteBanner(ctx context.Context, owner, title string) error {
	return s.mutate(ctx, owner, models.ActionDelete, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Banners(tx).Delete(ctx, owner, title)
		return err
	})
}

func (s *CatalogService) UpdateCurrentEpisodes(ctx context.Context, owner, title string, n uint32) error {
	return s.updateField(ctx, owner, title, models.FieldCurrentEpisodes, n)
}

func (s *CatalogService) UpdateTotalEpisodes(ctx context.Context, owner, title string, n uint32) error {
	return s.updateField(ctx, owner, title, models.FieldTotalEpisodes, n)
}

// UpdateReleaseDay accepts a day name in any letter case.
func (s *CatalogService) UpdateReleaseDay(ctx context.Context, owner, title, day string) error {
	d, err := models.ParseWeekday(day)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return s.updateField(ctx, owner, title, models.FieldReleaseDay, string(d))
}

func (s *CatalogService) UpdateReleaseTime(ctx context.Context, owner, title, releaseTime string) error {
	return s.updateField(ctx, owner, title, models.FieldReleaseTime, releaseTime)
}

func (s *CatalogService) updateField(ctx context.Context, owner, title string, field models.BannerField, value any) error {
	return s.mutate(ctx, owner, field.Action(), func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Banners(tx).UpdateField(ctx, owner, title, field, value)
		return err
	})
}

// mutate runs fn and appends the audit entry for action in one transaction.
// The entry is stamped when it is written.
func (s *CatalogService) mutate(ctx context.Context, owner string, action models.Action, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := fn(ctx, tx); err != nil {
			return err
		}
		if err := s.repomanager.AuditLog(tx).Append(ctx, owner, action, s.now()); err != nil {
			return fmt.Errorf("error recording %s: %w", action, err)
		}
		return nil
	})
}

// SearchBanners returns owner's banners whose title contains query.
func (s *CatalogService) SearchBanners(ctx context.Context, owner, query string, page models.Page) ([]models.Banner, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return s.repomanager.Banners(s.db).Search(ctx, owner, query, page)
}

func (s *CatalogService) ListAllBanners(ctx context.Context, owner string) ([]models.Banner, error) {
	return s.repomanager.Banners(s.db).ListAll(ctx, owner)
}

func (s *CatalogService) ListPaged(ctx context.Context, owner string, page models.Page) ([]models.Banner, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return s.repomanager.Banners(s.db).ListPage(ctx, owner, page)
}

// ListSortedByReleaseDay orders owner's banners by the number of days until
// their release day, counting from the current day.
func (s *CatalogService) ListSortedByReleaseDay(ctx context.Context, owner string, page models.Page) ([]models.Banner, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	today := models.WeekdayOf(s.now())
	return s.repomanager.Banners(s.db).ListByReleaseDay(ctx, owner, today, page)
}

func validatePage(p models.Page) error {
	if !p.Valid() {
		return fmt.Errorf("%w: page size must be positive and index non-negative", common.ErrorValidation)
	}
	return nil
}
