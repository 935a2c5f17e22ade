package cgroup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

// Control file names per group directory.
const (
	fileMemoryCurrent = "memory.current"
	fileMemoryPeak    = "memory.peak"
	fileMemoryMax     = "memory.max"
	fileCPUStat       = "cpu.stat"
	fileIOStat        = "io.stat"
	filePidsCurrent   = "pids.current"
	filePidsMax       = "pids.max"
)

// limitNone is the literal the kernel writes for an unlimited max file.
const limitNone = "max"

// ParseUint parses a single-integer counter file body.
func ParseUint(content string) (uint64, error) {
	s := strings.TrimSpace(content)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("not an integer counter: %q", s), "")
	}
	return v, nil
}

// ParseLimit parses an integer-or-"max" file body. The literal "max" maps
// to a nil limit, never to zero or an error.
func ParseLimit(content string) (*uint64, error) {
	s := strings.TrimSpace(content)
	if s == limitNone {
		return nil, nil
	}
	v, err := ParseUint(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseCPUStat parses cpu.stat `key value` lines. Unknown keys and
// malformed lines are skipped; recognized fields parse independently.
func ParseCPUStat(content string) CPUStats {
	var stats CPUStats
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "usage_usec":
			stats.UsageUsec = v
		case "user_usec":
			stats.UserUsec = v
		case "system_usec":
			stats.SystemUsec = v
		case "nr_periods":
			stats.NrPeriods = v
		case "nr_throttled":
			stats.NrThrottled = v
		case "throttled_usec":
			stats.ThrottledUsec = v
		}
	}
	return stats
}

// ParseIOStat parses io.stat lines of the form
// `<dev> rbytes=N wbytes=N rios=N wios=N ...`, summing counters across
// devices.
func ParseIOStat(content string) IOStats {
	var stats IOStats
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		for _, tok := range fields[1:] {
			key, val, ok := strings.Cut(tok, "=")
			if !ok {
				continue
			}
			v, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				continue
			}
			switch key {
			case "rbytes":
				stats.Rbytes += v
			case "wbytes":
				stats.Wbytes += v
			case "rios":
				stats.Rios += v
			case "wios":
				stats.Wios += v
			}
		}
	}
	return stats
}

// ReadGroupStats reads every counter file under dir into a ResourceStats.
// Per-file failures (missing file, permission error, malformed content)
// leave only the affected field at its default and are logged as
// diagnostics; the record as a whole is always produced. A missing file is
// normal on groups without the matching controller enabled, so it is not
// logged at all.
func ReadGroupStats(dir string, log logger.Logger) ResourceStats {
	var stats ResourceStats

	if content, ok := readCounterFile(dir, fileMemoryCurrent, log); ok {
		if v, err := ParseUint(content); err != nil {
			log.Debug("cgroup %s: %s: %v", dir, fileMemoryCurrent, err)
		} else {
			stats.Memory.Current = v
		}
	}
	if content, ok := readCounterFile(dir, fileMemoryPeak, log); ok {
		if v, err := ParseUint(content); err != nil {
			log.Debug("cgroup %s: %s: %v", dir, fileMemoryPeak, err)
		} else {
			stats.Memory.Peak = v
		}
	}
	if content, ok := readCounterFile(dir, fileMemoryMax, log); ok {
		if v, err := ParseLimit(content); err != nil {
			log.Debug("cgroup %s: %s: %v", dir, fileMemoryMax, err)
		} else {
			stats.Memory.Max = v
		}
	}
	if content, ok := readCounterFile(dir, fileCPUStat, log); ok {
		stats.CPU = ParseCPUStat(content)
	}
	if content, ok := readCounterFile(dir, fileIOStat, log); ok {
		stats.IO = ParseIOStat(content)
	}
	if content, ok := readCounterFile(dir, filePidsCurrent, log); ok {
		if v, err := ParseUint(content); err != nil {
			log.Debug("cgroup %s: %s: %v", dir, filePidsCurrent, err)
		} else {
			stats.Pids.Current = v
		}
	}
	if content, ok := readCounterFile(dir, filePidsMax, log); ok {
		if v, err := ParseLimit(content); err != nil {
			log.Debug("cgroup %s: %s: %v", dir, filePidsMax, err)
		} else {
			stats.Pids.Max = v
		}
	}

	return stats
}

// readCounterFile reads one control file, treating absence as "no data".
func readCounterFile(dir, name string, log logger.Logger) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("cgroup %s: read %s: %v", dir, name, err)
		}
		return "", false
	}
	return string(content), true
}
