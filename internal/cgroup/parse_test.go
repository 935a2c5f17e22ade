package cgroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/cgtop/internal/errors"
	"github.com/rileyhilliard/cgtop/internal/logger"
)

func TestParseUint(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    uint64
		wantErr bool
	}{
		{name: "plain integer", content: "12345", want: 12345},
		{name: "trailing newline", content: "67890\n", want: 67890},
		{name: "surrounding whitespace", content: "  42  \n", want: 42},
		{name: "zero", content: "0", want: 0},
		{name: "empty", content: "", wantErr: true},
		{name: "garbage", content: "not-a-number", wantErr: true},
		{name: "negative", content: "-5", wantErr: true},
		{name: "max literal is not an integer", content: "max", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUint(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLimit(t *testing.T) {
	t.Run("max means no limit", func(t *testing.T) {
		got, err := ParseLimit("max\n")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("zero is a real limit", func(t *testing.T) {
		got, err := ParseLimit("0")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint64(0), *got)
	})

	t.Run("numeric limit", func(t *testing.T) {
		got, err := ParseLimit("1073741824\n")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint64(1073741824), *got)
	})

	t.Run("garbage errors", func(t *testing.T) {
		_, err := ParseLimit("unlimited")
		require.Error(t, err)
	})
}

func TestParseCPUStat(t *testing.T) {
	content := "usage_usec 1000000\n" +
		"user_usec 600000\n" +
		"system_usec 400000\n" +
		"nr_periods 10\n" +
		"nr_throttled 2\n" +
		"throttled_usec 5000\n"

	stats := ParseCPUStat(content)
	assert.Equal(t, uint64(1000000), stats.UsageUsec)
	assert.Equal(t, uint64(600000), stats.UserUsec)
	assert.Equal(t, uint64(400000), stats.SystemUsec)
	assert.Equal(t, uint64(10), stats.NrPeriods)
	assert.Equal(t, uint64(2), stats.NrThrottled)
	assert.Equal(t, uint64(5000), stats.ThrottledUsec)
}

func TestParseCPUStatSkipsMalformedLines(t *testing.T) {
	content := "usage_usec 1000\n" +
		"user_usec notanumber\n" +
		"danglingkey\n" +
		"some_future_field 99\n" +
		"system_usec 250\n"

	stats := ParseCPUStat(content)
	assert.Equal(t, uint64(1000), stats.UsageUsec)
	assert.Equal(t, uint64(0), stats.UserUsec, "malformed value leaves field at zero")
	assert.Equal(t, uint64(250), stats.SystemUsec, "parsing continues past bad lines")
}

func TestParseIOStatSumsDevices(t *testing.T) {
	content := "8:0 rbytes=1000 wbytes=500 rios=10 wios=5 dbytes=0 dios=0\n" +
		"8:16 rbytes=2000 wbytes=1500 rios=20 wios=15\n"

	stats := ParseIOStat(content)
	assert.Equal(t, uint64(3000), stats.Rbytes)
	assert.Equal(t, uint64(2000), stats.Wbytes)
	assert.Equal(t, uint64(30), stats.Rios)
	assert.Equal(t, uint64(20), stats.Wios)
}

func TestParseIOStatTolerance(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		assert.Equal(t, IOStats{}, ParseIOStat(""))
	})

	t.Run("malformed tokens skipped", func(t *testing.T) {
		content := "8:0 rbytes=abc wbytes=100 noequals rios=\n"
		stats := ParseIOStat(content)
		assert.Equal(t, uint64(0), stats.Rbytes)
		assert.Equal(t, uint64(100), stats.Wbytes)
		assert.Equal(t, uint64(0), stats.Rios)
	})
}

func TestReadGroupStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "memory.current", "52428800\n")
	writeFile(t, dir, "memory.peak", "62914560\n")
	writeFile(t, dir, "memory.max", "max\n")
	writeFile(t, dir, "cpu.stat", "usage_usec 123456\nuser_usec 100000\nsystem_usec 23456\n")
	writeFile(t, dir, "io.stat", "8:0 rbytes=4096 wbytes=8192 rios=4 wios=8\n")
	writeFile(t, dir, "pids.current", "17\n")
	writeFile(t, dir, "pids.max", "100\n")

	stats := ReadGroupStats(dir, logger.Noop())

	assert.Equal(t, uint64(52428800), stats.Memory.Current)
	assert.Equal(t, uint64(62914560), stats.Memory.Peak)
	assert.Nil(t, stats.Memory.Max)
	assert.Equal(t, uint64(123456), stats.CPU.UsageUsec)
	assert.Equal(t, uint64(4096), stats.IO.Rbytes)
	assert.Equal(t, uint64(17), stats.Pids.Current)
	require.NotNil(t, stats.Pids.Max)
	assert.Equal(t, uint64(100), *stats.Pids.Max)
}

func TestReadGroupStatsMissingAndMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "memory.current", "corrupt\n")
	writeFile(t, dir, "pids.current", "3\n")
	// Everything else absent, as on a group without those controllers.

	log := logger.NewBufferLogger()
	stats := ReadGroupStats(dir, log)

	assert.Equal(t, uint64(0), stats.Memory.Current, "malformed field absorbed as zero")
	assert.Equal(t, uint64(3), stats.Pids.Current, "good fields survive bad neighbors")
	assert.Nil(t, stats.Memory.Max)
	assert.True(t, log.HasLevel("debug"), "malformed content leaves a diagnostic")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
