package app

import (
	"context"
	"time"

	"github.com/rileyhilliard/cgtop/internal/events"
)

// runCleanup nudges the coordinator to prune stale history on a slow
// cadence. The worker only signals; the pruning itself happens on the
// coordinator goroutine, which owns the state.
func (a *App) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !a.publish(ctx, events.Clean{}) {
				return
			}
		}
	}
}
