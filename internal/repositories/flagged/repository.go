// Package flagged stores the set of accounts flagged by the anomaly monitor.
// Membership only grows; an identity appears at most once.
package flagged

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

type Repository interface {
	// Flag adds identity to the set. It reports false when the identity was
	// already flagged, in which case the original flag time is kept.
	Flag(ctx context.Context, identity string, at time.Time) (bool, error)
	// List returns all flagged accounts ordered by flag time.
	List(ctx context.Context) ([]models.FlaggedAccount, error)
}
