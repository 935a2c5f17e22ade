package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count in IEC units (KiB, MiB, GiB).
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// FormatLimit renders an optional limit, "max" when unlimited.
func FormatLimit(limit *uint64) string {
	if limit == nil {
		return "max"
	}
	return humanize.IBytes(*limit)
}

// FormatCountLimit renders an optional count limit, "max" when unlimited.
func FormatCountLimit(limit *uint64) string {
	if limit == nil {
		return "max"
	}
	return humanize.Comma(int64(*limit))
}

// FormatCount renders a count with thousands separators.
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// FormatRate renders a bytes-per-second rate.
func FormatRate(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}

// FormatPercent renders a percentage with one decimal, or a dash when the
// value is unavailable (negative).
func FormatPercent(p float64) string {
	if p < 0 {
		return "–"
	}
	return fmt.Sprintf("%.1f%%", p)
}

// FormatCPUTime renders cumulative CPU microseconds as a duration.
func FormatCPUTime(usec uint64) string {
	d := time.Duration(usec) * time.Microsecond
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(100 * time.Millisecond).String()
}
