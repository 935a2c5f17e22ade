package app

import (
	"context"
	"time"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/events"
)

// runCollector publishes one snapshot immediately and then one per
// interval, with refresh intents forcing an early cycle. The worker never
// dies on scan failure: an unreadable hierarchy switches the cycle to
// synthetic data instead.
func (a *App) runCollector(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.CollectInterval)
	defer ticker.Stop()

	a.collectCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.collectCycle(ctx)
		case <-a.refresh:
			a.collectCycle(ctx)
			ticker.Reset(a.cfg.CollectInterval)
		}
	}
}

func (a *App) collectCycle(ctx context.Context) {
	snap := a.collectOnce(ctx)
	if snap == nil {
		return
	}
	a.publish(ctx, events.Update{Snapshot: snap})
}

// collectOnce produces one snapshot, real or synthetic. A nil return
// means the cycle was abandoned (context canceled mid-scan).
func (a *App) collectOnce(ctx context.Context) *cgroup.Snapshot {
	if a.cfg.ForceFallback {
		return cgroup.FallbackSnapshot()
	}

	stats, err := a.scanner.Scan(ctx)
	if err != nil {
		if errors.IsCode(err, errors.ErrRoot) {
			a.log.Warn("hierarchy scan failed, using synthetic data: %v", err)
			return cgroup.FallbackSnapshot()
		}
		a.log.Debug("collection cycle abandoned: %v", err)
		return nil
	}
	if len(stats) == 0 {
		a.log.Warn("hierarchy scan found no groups under %s, using synthetic data", a.cfg.Root)
		return cgroup.FallbackSnapshot()
	}

	// Process mapping is best effort; a failed /proc read costs the
	// process table for this cycle, not the cycle itself.
	procs, err := a.mapper.Map()
	if err != nil {
		a.log.Warn("process mapping failed: %v", err)
		procs = nil
	}

	return cgroup.NewSnapshot(stats, procs, false)
}
