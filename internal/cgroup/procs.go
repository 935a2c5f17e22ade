package cgroup

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// ProcessInfo describes one process and the group that owns it.
type ProcessInfo struct {
	PID     int
	Command string
	Group   Path
}

// ProcessMapper resolves which group owns each running process by reading
// the per-PID cgroup file under /proc. It fails independently of the
// hierarchy scan: losing it costs process attachment, never the cycle.
type ProcessMapper struct {
	procRoot    string // normally /proc
	cgroupMount string // normally /sys/fs/cgroup
	rootDir     string // the monitored hierarchy root
	log         logger.Logger
}

// NewProcessMapper creates a mapper for processes whose groups live under
// rootDir.
func NewProcessMapper(rootDir string, log logger.Logger) *ProcessMapper {
	if log == nil {
		log = logger.Noop()
	}
	return &ProcessMapper{
		procRoot:    "/proc",
		cgroupMount: "/sys/fs/cgroup",
		rootDir:     rootDir,
		log:         log,
	}
}

// Map returns every resolvable process attached to a group under the
// monitored root. Individual unresolvable processes are skipped; only a
// completely unreadable process table is an error (code PROC).
func (m *ProcessMapper) Map() ([]ProcessInfo, error) {
	entries, err := os.ReadDir(m.procRoot)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProc,
			"cannot read process table at "+m.procRoot, "")
	}

	var procs []ProcessInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		group, ok := m.groupOf(pid)
		if !ok {
			continue
		}
		procs = append(procs, ProcessInfo{
			PID:     pid,
			Command: m.commandOf(pid),
			Group:   group,
		})
	}
	return procs, nil
}

// groupOf reads /proc/<pid>/cgroup and maps the unified-hierarchy entry
// ("0::<path>") to a group path relative to the monitored root. Processes
// that vanish mid-scan or live outside the root are skipped.
func (m *ProcessMapper) groupOf(pid int) (Path, bool) {
	content, err := os.ReadFile(filepath.Join(m.procRoot, strconv.Itoa(pid), "cgroup"))
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(content), "\n") {
		rest, ok := strings.CutPrefix(line, "0::")
		if !ok {
			continue
		}
		full := filepath.Join(m.cgroupMount, strings.TrimSpace(rest))
		return RelativePath(m.rootDir, full)
	}
	return "", false
}

// commandOf returns the process command line, preferring cmdline over
// comm, with a bracketed PID as the last resort (kernel threads have an
// empty cmdline).
func (m *ProcessMapper) commandOf(pid int) string {
	dir := filepath.Join(m.procRoot, strconv.Itoa(pid))

	if raw, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
		cmd := strings.TrimRight(strings.ReplaceAll(string(raw), "\x00", " "), " ")
		if cmd != "" {
			return cmd
		}
	}
	if raw, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		if comm := strings.TrimSpace(string(raw)); comm != "" {
			return "[" + comm + "]"
		}
	}
	return "[" + strconv.Itoa(pid) + "]"
}
