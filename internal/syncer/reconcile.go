package syncer

import (
	"context"
	"fmt"
	"log/slog"
)

// reconcile deletes every row in table whose id was not synced this run and
// returns the deleted ids. Missing locally means delete remotely: each run
// is authoritative for the whole table. Failures here are infrastructure
// errors and abort the enclosing phase.
func (p *Pipeline) reconcile(
	ctx context.Context,
	table string,
	existing func(context.Context) ([]string, error),
	remove func(context.Context, []string) error,
	keep []string,
) ([]string, error) {
	ids, err := existing(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", table, err)
	}

	keepSet := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		keepSet[id] = struct{}{}
	}

	var stale []string
	for _, id := range ids {
		if _, ok := keepSet[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}

	if err := remove(ctx, stale); err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", table, err)
	}
	p.logger.Info("deleted stale rows", slog.String("table", table), slog.Int("count", len(stale)))
	return stale, nil
}
