// Package banners persists release banners. Every query is scoped to the
// owning account.
package banners

import (
	"context"

	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

type Repository interface {
	// Create inserts b. A second banner with the same (owner, title)
	// yields common.ErrConflict.
	Create(ctx context.Context, b *models.Banner) error

	// Delete removes the banner (owner, title) and reports how many rows
	// matched (0 or 1).
	Delete(ctx context.Context, owner, title string) (int64, error)

	// UpdateField sets one mutable field of (owner, title) and reports how
	// many rows matched.
	UpdateField(ctx context.Context, owner, title string, field models.BannerField, value any) (int64, error)

	ListAll(ctx context.Context, owner string) ([]models.Banner, error)
	ListPage(ctx context.Context, owner string, page models.Page) ([]models.Banner, error)

	// Search matches query as a substring of the title (case-insensitive for ASCII).
	Search(ctx context.Context, owner, query string, page models.Page) ([]models.Banner, error)

	// ListByReleaseDay orders banners by how many days remain until their
	// release day, counting from today; ties keep insertion order.
	ListByReleaseDay(ctx context.Context, owner string, today models.Weekday, page models.Page) ([]models.Banner, error)
}
