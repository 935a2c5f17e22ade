// Package app wires the monitor together: three producer goroutines (the
// collector, the cleanup ticker, and the input reader) feed one buffered
// event channel consumed by the coordinator, which owns all mutable view
// state. Nothing outside the coordinator goroutine touches that state.
package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muesli/cancelreader"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
	"github.com/rileyhilliard/cgtop/internal/config"
	"github.com/rileyhilliard/cgtop/internal/events"
	"github.com/rileyhilliard/cgtop/internal/logger"
	"github.com/rileyhilliard/cgtop/internal/tree"
	"github.com/rileyhilliard/cgtop/internal/ui"
)

// eventBuffer sizes the event channel. Producers block only when the
// coordinator falls this far behind, which backpressures collection
// rather than growing memory.
const eventBuffer = 64

// Phase is the coordinator lifecycle state.
type Phase int32

const (
	Running Phase = iota
	ShuttingDown
	Stopped
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// App owns the full pipeline for one monitor run.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	scanner *cgroup.Scanner
	mapper  *cgroup.ProcessMapper
	term    *ui.Terminal

	events  chan events.Event
	refresh chan struct{}

	state    *tree.State
	history  *tree.History
	fallback bool
	showHelp bool

	phase atomic.Int32
}

// New assembles an app from resolved configuration.
func New(cfg *config.Config, log logger.Logger) *App {
	if log == nil {
		log = logger.Noop()
	}
	return &App{
		cfg:     cfg,
		log:     log,
		scanner: cgroup.NewScanner(cfg.Root, log),
		mapper:  cgroup.NewProcessMapper(cfg.Root, log),
		term:    ui.NewTerminal(),
		events:  make(chan events.Event, eventBuffer),
		refresh: make(chan struct{}, 1),
		state:   tree.NewState(),
		history: tree.NewHistory(cfg.HistorySize),
	}
}

// Phase returns the current lifecycle phase.
func (a *App) Phase() Phase {
	return Phase(a.phase.Load())
}

// Run executes the monitor until the user quits or ctx is canceled. It
// enters the alternate screen, starts the producer goroutines, runs the
// coordinator on the calling goroutine, and then shuts everything down
// within the configured grace period.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.term.Enter(); err != nil {
		return err
	}
	defer a.term.Restore()

	reader, err := cancelreader.NewReader(a.term.Input())
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.runCollector(ctx)
	}()
	go func() {
		defer wg.Done()
		a.runCleanup(ctx)
	}()
	go func() {
		defer wg.Done()
		a.runInput(ctx, reader)
	}()

	a.log.Info("cgtop started: root=%s interval=%s", a.cfg.Root, a.cfg.CollectInterval)
	a.coordinate(ctx)

	// Shutdown: stop producers, then wait a bounded time for them. A
	// producer stuck in a slow filesystem read must not hold the exit.
	a.phase.Store(int32(ShuttingDown))
	cancel()
	reader.Cancel()
	if !waitTimeout(&wg, a.cfg.ShutdownGrace) {
		a.log.Warn("workers did not stop within %s, exiting anyway", a.cfg.ShutdownGrace)
	}
	a.phase.Store(int32(Stopped))
	a.log.Info("cgtop stopped")
	return nil
}

// waitTimeout waits on wg up to d, reporting whether it finished in time.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

// publish sends an event unless the run is already over.
func (a *App) publish(ctx context.Context, ev events.Event) bool {
	select {
	case a.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
