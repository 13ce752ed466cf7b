package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bannerkeeper/internal/timex"
)

// Online probes network reachability now and prints the result.
func (a *App) Online(ctx context.Context) error {
	a.println(string(a.checkOnline(ctx)))
	return nil
}

// Flagged lists accounts flagged by the anomaly monitor. Administrators only.
func (a *App) Flagged(ctx context.Context) error {
	actor, err := a.identity()
	if err != nil {
		return err
	}
	list, err := a.services.Admin.FlaggedAccounts(ctx, actor)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No flagged accounts")
		return nil
	}
	for _, f := range list {
		a.println(fmt.Sprintf("%-30s %s", f.Identity, timex.FormatTimestamp(f.FlaggedAt)))
	}
	return nil
}

// Simulate writes a burst of audit entries so the monitor flags the
// target on its next pass. Administrators only.
func (a *App) Simulate(ctx context.Context) error {
	actor, err := a.identity()
	if err != nil {
		return err
	}
	target, err := getSimpleText(a.reader, "Target user (empty for yourself)", a.out)
	if err != nil {
		return err
	}
	count, err := GetInt(a.reader, "Number of actions (0 for the monitor threshold)", 0, a.out)
	if err != nil {
		return err
	}

	n, err := a.services.Admin.SimulateAttack(ctx, actor, target, count)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Recorded %d actions", n))
	return nil
}
