package app

import (
	"context"
	"time"

	"github.com/rileyhilliard/cgtop/internal/events"
	"github.com/rileyhilliard/cgtop/internal/ui"
)

// coordinate is the single consumer of the event channel. It applies each
// event to the view state and redraws, waiting at most RenderInterval for
// the next event so the clock in the header keeps moving even when the
// system is idle. Returns when a quit intent or Terminate arrives, or ctx
// is canceled.
func (a *App) coordinate(ctx context.Context) {
	timer := time.NewTimer(a.cfg.RenderInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.events:
			if a.handle(ev) {
				return
			}
			// Drain whatever queued up behind it so one redraw covers
			// the whole burst.
			if a.drain() {
				return
			}
		case <-timer.C:
		}

		a.render()
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(a.cfg.RenderInterval)
	}
}

// drain handles queued events without blocking. Returns true on a
// terminating event.
func (a *App) drain() bool {
	for {
		select {
		case ev := <-a.events:
			if a.handle(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// handle applies one event to the coordinator-owned state. Returns true
// when the run should end.
func (a *App) handle(ev events.Event) bool {
	switch e := ev.(type) {
	case events.Update:
		if e.Snapshot == nil {
			return false
		}
		a.state.Apply(e.Snapshot)
		a.history.Push(e.Snapshot)
		a.fallback = e.Snapshot.Fallback
	case events.Clean:
		if removed := a.history.Prune(a.state.Snapshot()); removed > 0 {
			a.log.Debug("pruned history for %d vanished groups", removed)
		}
	case events.KeyInput:
		return a.handleIntent(e.Intent)
	case events.Terminate:
		return true
	}
	return false
}

func (a *App) handleIntent(in events.Intent) bool {
	a.log.Debug("key intent: %s", in)

	switch in {
	case events.IntentQuit:
		return true
	case events.IntentHelp:
		a.showHelp = !a.showHelp
		return false
	case events.IntentRefresh:
		select {
		case a.refresh <- struct{}{}:
		default:
		}
		return false
	}

	// Navigation closes the help overlay rather than acting through it.
	if a.showHelp {
		a.showHelp = false
		return false
	}

	switch in {
	case events.IntentUp:
		a.state.SelectPrev()
	case events.IntentDown:
		a.state.SelectNext()
	case events.IntentToggle:
		a.state.Toggle()
	case events.IntentCollapse:
		a.state.Collapse()
	case events.IntentParent:
		a.state.JumpToParent()
	}
	return false
}

// render draws one frame. Skipped when no terminal is attached, which is
// how tests drive the coordinator headless.
func (a *App) render() {
	if a.term == nil {
		return
	}
	width, height := a.term.Size()
	a.term.Draw(ui.Render(ui.Frame{
		State:       a.state,
		History:     a.history,
		Root:        a.cfg.Root,
		IntervalSec: a.cfg.CollectInterval.Seconds(),
		Width:       width,
		Height:      height,
		ShowHelp:    a.showHelp,
		Fallback:    a.fallback,
	}))
}
