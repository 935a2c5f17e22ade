package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
)

func snapWithStats(stats map[cgroup.Path]cgroup.ResourceStats) *cgroup.Snapshot {
	return cgroup.NewSnapshot(stats, nil, false)
}

func TestHistoryPushAndMemory(t *testing.T) {
	h := NewHistory(10)

	for i := 1; i <= 3; i++ {
		h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
			"/a": {Memory: cgroup.MemoryStats{Current: uint64(i * 100)}},
		}))
	}

	got := h.MemoryHistory("/a", 10)
	assert.Equal(t, []float64{100, 200, 300}, got, "oldest first")
	assert.Equal(t, 3, h.Count("/a"))
	assert.Nil(t, h.MemoryHistory("/missing", 10))
}

func TestHistoryRingOverwrite(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
			"/a": {Memory: cgroup.MemoryStats{Current: uint64(i)}},
		}))
	}

	assert.Equal(t, []float64{3, 4, 5}, h.MemoryHistory("/a", 10))
	assert.Equal(t, 3, h.Count("/a"))
}

func TestCPURateHistory(t *testing.T) {
	h := NewHistory(10)
	// Cumulative usage grows 1s of CPU per 2s sample: 50% of one CPU.
	for _, usec := range []uint64{0, 1_000_000, 2_000_000, 3_000_000} {
		h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
			"/a": {CPU: cgroup.CPUStats{UsageUsec: usec}},
		}))
	}

	rates := h.CPURateHistory("/a", 10, 2.0)
	require.Len(t, rates, 3)
	for _, r := range rates {
		assert.InDelta(t, 50.0, r, 0.001)
	}
}

func TestCPURateHistoryCounterReset(t *testing.T) {
	h := NewHistory(10)
	for _, usec := range []uint64{5_000_000, 1_000_000} {
		h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
			"/a": {CPU: cgroup.CPUStats{UsageUsec: usec}},
		}))
	}

	rates := h.CPURateHistory("/a", 10, 1.0)
	require.Len(t, rates, 1)
	assert.Equal(t, 0.0, rates[0], "negative delta clamps to zero")
}

func TestIORates(t *testing.T) {
	h := NewHistory(10)
	h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
		"/a": {IO: cgroup.IOStats{Rbytes: 1000, Wbytes: 500}},
	}))
	h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
		"/a": {IO: cgroup.IOStats{Rbytes: 3000, Wbytes: 1500}},
	}))

	read, write := h.IORates("/a", 2.0)
	assert.Equal(t, 1000.0, read)
	assert.Equal(t, 500.0, write)

	read, write = h.IORates("/missing", 2.0)
	assert.Zero(t, read)
	assert.Zero(t, write)
}

func TestPruneDropsVanishedGroups(t *testing.T) {
	h := NewHistory(10)
	h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
		"/a": {}, "/b": {},
	}))
	require.Equal(t, 3, h.Groups(), "/, /a, /b")

	removed := h.Prune(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{"/a": {}}))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, h.Groups())
	assert.Nil(t, h.MemoryHistory("/b", 10))
	assert.NotNil(t, h.MemoryHistory("/a", 10))
}

func TestHistoryDefaults(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Push(snapWithStats(map[cgroup.Path]cgroup.ResourceStats{
			"/a": {Memory: cgroup.MemoryStats{Current: uint64(i)}},
		}))
	}
	assert.Equal(t, DefaultHistorySize, h.Count("/a"))

	h.ClearAll()
	assert.Zero(t, h.Groups())
}
