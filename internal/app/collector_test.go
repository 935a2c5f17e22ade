package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
	"github.com/rileyhilliard/cgtop/internal/events"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// withScanRoot points the app's collection pipeline at a directory.
func withScanRoot(a *App, root string) {
	a.cfg.Root = root
	a.scanner = cgroup.NewScanner(root, logger.Noop())
	a.mapper = cgroup.NewProcessMapper(root, logger.Noop())
}

func TestCollectOnceRealHierarchy(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "system.slice")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memory.current"), []byte("4096\n"), 0o644))

	a := newTestApp()
	withScanRoot(a, root)

	snap := a.collectOnce(context.Background())
	require.NotNil(t, snap)
	assert.False(t, snap.Fallback)
	assert.True(t, snap.Contains("/system.slice"))
	assert.Equal(t, uint64(4096), snap.Nodes["/system.slice"].Stats.Memory.Current)
}

func TestCollectOnceFallsBackOnUnreadableRoot(t *testing.T) {
	a := newTestApp()
	withScanRoot(a, filepath.Join(t.TempDir(), "gone"))

	snap := a.collectOnce(context.Background())
	require.NotNil(t, snap)
	assert.True(t, snap.Fallback, "unreadable root switches to synthetic data")
	assert.Greater(t, snap.Len(), 1)
}

func TestCollectOnceForcedFallback(t *testing.T) {
	a := newTestApp()
	// Root readable, but mock mode wins.
	withScanRoot(a, t.TempDir())
	a.cfg.ForceFallback = true

	snap := a.collectOnce(context.Background())
	require.NotNil(t, snap)
	assert.True(t, snap.Fallback)
}

func TestCollectOnceAbandonedOnCancel(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))

	a := newTestApp()
	withScanRoot(a, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, a.collectOnce(ctx), "canceled cycle publishes nothing")
}

func TestRunCollectorPublishesImmediately(t *testing.T) {
	a := newTestApp()
	withScanRoot(a, t.TempDir())
	a.cfg.CollectInterval = time.Hour // only the immediate cycle fires

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.runCollector(ctx)

	select {
	case ev := <-a.events:
		up, ok := ev.(events.Update)
		require.True(t, ok)
		require.NotNil(t, up.Snapshot)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot published on startup")
	}
}

func TestRunCollectorRefreshForcesCycle(t *testing.T) {
	a := newTestApp()
	withScanRoot(a, t.TempDir())
	a.cfg.CollectInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.runCollector(ctx)

	// Consume the startup snapshot, then demand another.
	<-a.events
	a.refresh <- struct{}{}

	select {
	case ev := <-a.events:
		_, ok := ev.(events.Update)
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not force a collection cycle")
	}
}

func TestRunCleanupPublishesOnCadence(t *testing.T) {
	a := newTestApp()
	a.cfg.CleanupInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.runCleanup(ctx)

	select {
	case ev := <-a.events:
		_, ok := ev.(events.Clean)
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup worker never ticked")
	}
}
