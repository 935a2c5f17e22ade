package cgroup

// ResourceStats is the per-group counter record assembled from the group's
// control files. It is a value type: built once per collection cycle and
// never mutated afterwards. A counter whose file is missing or malformed is
// simply left at its zero/absent value.
type ResourceStats struct {
	Memory MemoryStats
	CPU    CPUStats
	IO     IOStats
	Pids   PidStats
}

// MemoryStats mirrors memory.current, memory.peak, and memory.max.
// A nil Max means "max" (no limit), which is distinct from a zero limit.
type MemoryStats struct {
	Current uint64
	Peak    uint64
	Max     *uint64
}

// CPUStats mirrors the cpu.stat key/value file. All values are cumulative
// microseconds or counts since group creation.
type CPUStats struct {
	UsageUsec     uint64
	UserUsec      uint64
	SystemUsec    uint64
	NrPeriods     uint64
	NrThrottled   uint64
	ThrottledUsec uint64
}

// IOStats is io.stat summed across all devices.
type IOStats struct {
	Rbytes uint64
	Wbytes uint64
	Rios   uint64
	Wios   uint64
}

// PidStats mirrors pids.current and pids.max; nil Max means unlimited.
type PidStats struct {
	Current uint64
	Max     *uint64
}

// MemoryPercent returns memory usage as a percentage of the limit, or -1
// when the group is unlimited.
func (s ResourceStats) MemoryPercent() float64 {
	if s.Memory.Max == nil || *s.Memory.Max == 0 {
		return -1
	}
	return float64(s.Memory.Current) / float64(*s.Memory.Max) * 100
}
