package models

import "time"

// Action is the label recorded for one mutating catalog operation.
type Action string

const (
	ActionAdd                   Action = "add"
	ActionDelete                Action = "delete"
	ActionUpdateCurrentEpisodes Action = "update-current-episodes"
	ActionUpdateTotalEpisodes   Action = "update-total-episodes"
	ActionUpdateReleaseDay      Action = "update-release-day"
	ActionUpdateReleaseTime     Action = "update-release-time"
)

// AuditEntry is one immutable audit log row.
type AuditEntry struct {
	ID        int64
	Identity  string
	Action    Action
	CreatedAt time.Time
}

// FlaggedAccount records that the anomaly monitor flagged Identity.
type FlaggedAccount struct {
	Identity  string
	FlaggedAt time.Time
}
