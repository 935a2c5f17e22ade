package cgroup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// makeGroup creates a fake group directory with counter files.
func makeGroup(t *testing.T, root, rel string, memCurrent string) string {
	t.Helper()
	dir := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFile(t, dir, "memory.current", memCurrent)
	writeFile(t, dir, "memory.max", "max\n")
	writeFile(t, dir, "pids.current", "1\n")
	return dir
}

func TestScannerScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "memory.current", "1000\n")
	makeGroup(t, root, "system.slice", "2000\n")
	makeGroup(t, root, "system.slice/nginx.service", "3000\n")
	makeGroup(t, root, "user.slice", "4000\n")

	s := NewScanner(root, logger.Noop())
	stats, err := s.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, stats, 4)
	assert.Equal(t, uint64(1000), stats[Root].Memory.Current)
	assert.Equal(t, uint64(2000), stats["/system.slice"].Memory.Current)
	assert.Equal(t, uint64(3000), stats["/system.slice/nginx.service"].Memory.Current)
	assert.Equal(t, uint64(4000), stats["/user.slice"].Memory.Current)
	assert.Nil(t, stats[Root].Memory.Max)
}

func TestScannerScanMissingRoot(t *testing.T) {
	s := NewScanner(filepath.Join(t.TempDir(), "does-not-exist"), logger.Noop())
	_, err := s.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRoot))
}

func TestScannerScanCanceledContext(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "a", "1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(root, logger.Noop())
	_, err := s.Scan(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScannerGroupWithoutCounterFiles(t *testing.T) {
	root := t.TempDir()
	// A bare directory, as for a group with no controllers enabled.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty.slice"), 0o755))

	s := NewScanner(root, logger.Noop())
	stats, err := s.Scan(context.Background())
	require.NoError(t, err)

	st, ok := stats["/empty.slice"]
	require.True(t, ok, "group is listed even with no readable counters")
	assert.Equal(t, ResourceStats{}, st)
}
