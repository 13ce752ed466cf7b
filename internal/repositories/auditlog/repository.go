// Package auditlog is the append-only record of mutating catalog actions.
package auditlog

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

type Repository interface {
	// Append records that identity performed action at the given instant.
	Append(ctx context.Context, identity string, action models.Action, at time.Time) error
	// Since returns all entries stamped at or after cutoff, oldest first.
	Since(ctx context.Context, cutoff time.Time) ([]models.AuditEntry, error)
}
