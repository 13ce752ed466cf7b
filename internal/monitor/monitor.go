// Package monitor watches the audit log for accounts that perform too many
// actions in a short window and flags them.
package monitor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/logging"
	"github.com/dmitrijs2005/bannerkeeper/internal/notify"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
)

const (
	DefaultInterval  = 10 * time.Second
	DefaultThreshold = 10
)

// Monitor evaluates the trailing window of audit entries once per interval.
// An identity with at least threshold entries in the window is flagged and
// a notification is sent, on every pass where it stays over the threshold.
type Monitor struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	logger      logging.Logger
	interval    time.Duration
	threshold   int
	now         func() time.Time
}

func New(db *sql.DB, m repomanager.RepositoryManager, n notify.Notifier, l logging.Logger, interval time.Duration, threshold int) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Monitor{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      l,
		interval:    interval,
		threshold:   threshold,
		now:         time.Now,
	}
}

// Evaluate runs one detection pass over entries stamped at or after
// now-interval and returns the identities that crossed the threshold.
func (m *Monitor) Evaluate(ctx context.Context, now time.Time) ([]string, error) {
	entries, err := m.repomanager.AuditLog(m.db).Since(ctx, now.Add(-m.interval))
	if err != nil {
		return nil, fmt.Errorf("read audit window: %w", err)
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Identity]++
	}

	var offenders []string
	for id, n := range counts {
		if n >= m.threshold {
			offenders = append(offenders, id)
		}
	}
	sort.Strings(offenders)

	var errs []error
	flagged := m.repomanager.Flagged(m.db)
	for _, id := range offenders {
		created, err := flagged.Flag(ctx, id, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", id, err))
			continue
		}
		m.logger.Warn(ctx, "account over action threshold",
			"identity", id, "actions", counts[id], "newly_flagged", created)

		if err := m.notifier.Notify(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", id, err))
		}
	}

	return offenders, errors.Join(errs...)
}

// Tick evaluates the window ending at the current time and logs any
// failure instead of returning it.
func (m *Monitor) Tick(ctx context.Context) {
	if _, err := m.Evaluate(ctx, m.now()); err != nil {
		m.logger.Error(ctx, "anomaly check failed", "error", err)
	}
}

// Serve runs Tick every interval until ctx is done.
func (m *Monitor) Serve(ctx context.Context) error {
	m.logger.Info(ctx, "anomaly monitor started", "interval", m.interval, "threshold", m.threshold)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Tick(ctx)
		case <-ctx.Done():
			m.logger.Info(ctx, "anomaly monitor stopped")
			return ctx.Err()
		}
	}
}

func (m *Monitor) String() string {
	return "anomaly-monitor"
}
