// Package logger provides levelled console logging for jawikivec.
// Info and Warn lines report pipeline progress and are always printed
// unless quiet mode is on. Debug lines are printed only in verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// TimestampLayout matches the asctime layout of the historical pipeline logs.
const TimestampLayout = "2006-01-02 15:04:05,000"

var (
	mu         sync.RWMutex
	verbose    bool
	quiet      bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses Info and Section output. Warnings still print.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetTimestamps prefixes every line with the current time.
func SetTimestamps(t bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = t
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		write("DEBUG", format, args...)
	}
}

// Section prints a section header unless quiet mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if !quiet {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message unless quiet mode is enabled.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !quiet {
		write("INFO", format, args...)
	}
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write("WARN", format, args...)
}

// write formats one line (caller must hold the write lock).
func write(level, format string, args ...any) {
	if timestamps {
		fmt.Fprintf(output, "%s : %s : "+format+"\n",
			append([]any{now().Format(TimestampLayout), level}, args...)...)
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}
