// Package logging provides the leveled Logger used by every engine component.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is the leveled logging interface accepted by engine components via their WithLogger options.
type Logger interface {
	// DebugEnabled reports whether Debugf output is emitted.
	//
	// Returns:
	//   - bool: true if debug output is enabled
	DebugEnabled() bool

	// SetDebug enables or disables Debugf output.
	//
	// Parameters:
	//   - enabled: true to emit debug output
	SetDebug(enabled bool)

	// Debugf logs a message that is only emitted when debug output is enabled.
	Debugf(format string, args ...any)

	// Infof logs an informational message.
	Infof(format string, args ...any)

	// Warnf logs a recoverable problem, such as a resource that has not finished loading.
	Warnf(format string, args ...any)

	// Errorf logs an error the caller could not absorb locally.
	Errorf(format string, args ...any)
}

// defaultLogger writes "[prefix] LEVEL: msg" lines through the standard library logger.
// Debug and info go to stdout, warnings and errors to stderr.
type defaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

var _ Logger = &defaultLogger{}

// NewDefaultLogger creates a Logger that writes to stdout and stderr with the given prefix.
// Debug output is disabled until SetDebug(true) is called.
//
// Parameters:
//   - prefix: the component name printed in brackets on every line
//
// Returns:
//   - Logger: the new logger
func NewDefaultLogger(prefix string) Logger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &defaultLogger{
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *defaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *defaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *defaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *defaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *defaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *defaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *defaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// nopLogger discards everything. Useful for tests and benchmarks.
type nopLogger struct{}

// NewNopLogger returns a Logger that discards all output.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Entry is one captured log line.
type Entry struct {
	Level   string
	Message string
}

// RecordingLogger captures log lines in memory so tests can assert on warnings.
// It is safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	debug   bool
	entries []Entry
}

var _ Logger = &RecordingLogger{}

// NewRecordingLogger creates an empty RecordingLogger with debug output enabled.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{debug: true}
}

func (r *RecordingLogger) DebugEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debug
}

func (r *RecordingLogger) SetDebug(enabled bool) {
	r.mu.Lock()
	r.debug = enabled
	r.mu.Unlock()
}

func (r *RecordingLogger) record(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if level == "DEBUG" && !r.debug {
		return
	}
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (r *RecordingLogger) Debugf(format string, args ...any) { r.record("DEBUG", format, args...) }
func (r *RecordingLogger) Infof(format string, args ...any)  { r.record("INFO", format, args...) }
func (r *RecordingLogger) Warnf(format string, args ...any)  { r.record("WARN", format, args...) }
func (r *RecordingLogger) Errorf(format string, args ...any) { r.record("ERROR", format, args...) }

// Entries returns a copy of the captured lines, optionally filtered by level.
//
// Parameters:
//   - level: "DEBUG", "INFO", "WARN", "ERROR", or "" for all
//
// Returns:
//   - []Entry: the matching entries in logging order
func (r *RecordingLogger) Entries(level string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
