// Package logger provides a simple logging interface for cgtop components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The TUI owns stdout while it runs, so the default destination is a log
// file rather than the terminal.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// PrimaryLogPath is the preferred log file location.
const PrimaryLogPath = "/var/log/cgtop.log"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// fileLogger implements Logger and writes timestamped lines to an io.Writer.
// Debug messages are suppressed unless verbose is true or CGTOP_DEBUG is set.
type fileLogger struct {
	l       *log.Logger
	verbose bool
}

// NewWriterLogger creates a logger that writes to w.
func NewWriterLogger(w io.Writer, verbose bool) Logger {
	return &fileLogger{
		l:       log.New(w, "", log.LstdFlags),
		verbose: verbose,
	}
}

// NewFileLogger opens the primary log file, falling back to a state-dir
// location when the primary is unwritable. Returns the logger and the
// resolved path.
func NewFileLogger(verbose bool) (Logger, string, error) {
	f, path, err := openLogFile()
	if err != nil {
		return nil, "", err
	}
	return NewWriterLogger(f, verbose), path, nil
}

func openLogFile() (*os.File, string, error) {
	f, err := openAppend(PrimaryLogPath)
	if err == nil {
		return f, PrimaryLogPath, nil
	}

	fallback := fallbackLogPath()
	f, ferr := openAppend(fallback)
	if ferr != nil {
		return nil, "", fmt.Errorf("open log file %s (%v) and fallback %s: %w",
			PrimaryLogPath, err, fallback, ferr)
	}
	return f, fallback, nil
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// fallbackLogPath resolves $XDG_STATE_HOME/cgtop/cgtop.log, then
// ~/.local/state/cgtop/cgtop.log, then the temp dir.
func fallbackLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "state")
		}
	}
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "cgtop", "cgtop.log")
}

func (l *fileLogger) Debug(format string, args ...interface{}) {
	if l.verbose || os.Getenv("CGTOP_DEBUG") != "" {
		l.l.Printf("DEBUG: "+format, args...)
	}
}

func (l *fileLogger) Info(format string, args ...interface{}) {
	l.l.Printf(format, args...)
}

func (l *fileLogger) Warn(format string, args ...interface{}) {
	l.l.Printf("WARN: "+format, args...)
}

func (l *fileLogger) Error(format string, args ...interface{}) {
	l.l.Printf("ERROR: "+format, args...)
}

// noopLogger implements Logger but discards all messages.
// Useful for testing or when logging is not desired.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Exported for use in test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
// Useful for testing that code logs expected messages.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}
