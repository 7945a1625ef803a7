// Package logger provides the verbose diagnostics channel for the kado CLI.
// With --verbose set, the recommendation pipeline narrates its stages to
// stderr; otherwise nothing is written.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var verbose atomic.Bool

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetVerbose toggles verbose logging.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// IsVerbose reports whether verbose logging is on.
func IsVerbose() bool {
	return verbose.Load()
}

// SetOutput redirects log output, mainly for tests. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// Debug logs pipeline detail at the finest level.
func Debug(format string, args ...any) {
	emit("[DEBUG] ", format, args...)
}

// Info logs notable pipeline milestones.
func Info(format string, args ...any) {
	emit("[INFO] ", format, args...)
}

// Warn logs recoverable problems the pipeline degraded around.
func Warn(format string, args ...any) {
	emit("[WARN] ", format, args...)
}

// Section marks the start of a named pipeline stage.
func Section(name string) {
	if !verbose.Load() {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "\n=== %s ===\n", name)
}

func emit(prefix, format string, args ...any) {
	if !verbose.Load() {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, prefix+format+"\n", args...)
}
