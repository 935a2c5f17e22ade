package tree

import (
	"sync"

	"github.com/rileyhilliard/cgtop/internal/cgroup"
)

// DefaultHistorySize is the default number of samples retained per group.
const DefaultHistorySize = 60

// History retains per-group metric samples in fixed-size ring buffers for
// sparkline rendering. CPU and IO counters are stored cumulatively, the
// way the kernel reports them; rates are derived from deltas on read.
// It is thread-safe, though in practice only the coordinator touches it.
type History struct {
	mu     sync.RWMutex
	size   int
	groups map[cgroup.Path]*groupHistory
}

// groupHistory holds the ring buffers for a single group.
type groupHistory struct {
	memory  *ringBuffer // bytes in use
	cpu     *ringBuffer // cumulative usage_usec
	ioRead  *ringBuffer // cumulative bytes read
	ioWrite *ringBuffer // cumulative bytes written
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:   size,
		groups: make(map[cgroup.Path]*groupHistory),
	}
}

// Push records one sample per group from the snapshot.
func (h *History) Push(snap *cgroup.Snapshot) {
	if snap == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for p, n := range snap.Nodes {
		hist := h.getOrCreateGroup(p)
		hist.memory.push(float64(n.Stats.Memory.Current))
		hist.cpu.push(float64(n.Stats.CPU.UsageUsec))
		hist.ioRead.push(float64(n.Stats.IO.Rbytes))
		hist.ioWrite.push(float64(n.Stats.IO.Wbytes))
	}
}

// Prune drops history for groups absent from the snapshot. Driven by the
// cleanup worker's cadence rather than every collection cycle, so a group
// that flickers out for one sample keeps its buffers.
func (h *History) Prune(snap *cgroup.Snapshot) int {
	if snap == nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for p := range h.groups {
		if !snap.Contains(p) {
			delete(h.groups, p)
			removed++
		}
	}
	return removed
}

// MemoryHistory returns the last count memory samples (bytes) for a group,
// oldest first. Returns fewer values if not enough history is available.
func (h *History) MemoryHistory(p cgroup.Path, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.groups[p]
	if !ok {
		return nil
	}
	return hist.memory.getLast(count)
}

// CPURateHistory returns the last count CPU usage samples for a group as
// percentages of one CPU, oldest first. Rates come from deltas between
// consecutive cumulative samples, so count+1 stored samples yield count
// rates. Counter resets (negative deltas) clamp to zero.
func (h *History) CPURateHistory(p cgroup.Path, count int, intervalSec float64) []float64 {
	if intervalSec <= 0 {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.groups[p]
	if !ok {
		return nil
	}
	raw := hist.cpu.getLast(count + 1)
	if len(raw) < 2 {
		return nil
	}

	rates := make([]float64, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		delta := raw[i] - raw[i-1]
		if delta < 0 {
			delta = 0
		}
		// usec of CPU time per second of wall time, as a percentage.
		rates[i-1] = delta / (intervalSec * 1e6) * 100
	}
	return rates
}

// IORates returns the group's current read and write throughput in bytes
// per second, from the last two cumulative samples.
func (h *History) IORates(p cgroup.Path, intervalSec float64) (readBps, writeBps float64) {
	if intervalSec <= 0 {
		return 0, 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.groups[p]
	if !ok {
		return 0, 0
	}
	return lastRate(hist.ioRead, intervalSec), lastRate(hist.ioWrite, intervalSec)
}

func lastRate(r *ringBuffer, intervalSec float64) float64 {
	raw := r.getLast(2)
	if len(raw) < 2 {
		return 0
	}
	delta := raw[1] - raw[0]
	if delta < 0 {
		delta = 0
	}
	return delta / intervalSec
}

// Count returns the number of samples stored for a group.
func (h *History) Count(p cgroup.Path) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.groups[p]
	if !ok {
		return 0
	}
	return hist.memory.count
}

// Groups returns the number of groups currently tracked.
func (h *History) Groups() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups)
}

// ClearAll removes all history.
func (h *History) ClearAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groups = make(map[cgroup.Path]*groupHistory)
}

// getOrCreateGroup returns the history for a group, creating it if needed.
// Must be called with h.mu held.
func (h *History) getOrCreateGroup(p cgroup.Path) *groupHistory {
	hist, ok := h.groups[p]
	if !ok {
		hist = &groupHistory{
			memory:  newRingBuffer(h.size),
			cpu:     newRingBuffer(h.size),
			ioRead:  newRingBuffer(h.size),
			ioWrite: newRingBuffer(h.size),
		}
		h.groups[p] = hist
	}
	return hist
}

// newRingBuffer creates a ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order.
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
