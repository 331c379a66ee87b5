package output

import (
	"fmt"
	"os"
)

// Human-facing notices. Shares, secrets, and JSON go to stdout so they
// can be piped; everything here writes to stderr and never carries
// share material.

// Notice prints a progress notice to stderr.
func Notice(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, "ℹ️  "+msg)
}

// Noticef prints a formatted progress notice to stderr.
func Noticef(format string, args ...any) {
	Notice(fmt.Sprintf(format, args...))
}

// Warn prints a warning to stderr.
func Warn(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, "⚠️  "+msg)
}

// Warnf prints a formatted warning to stderr.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Success prints a completion notice to stderr.
func Success(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, "✅ "+msg)
}

// Successf prints a formatted completion notice to stderr.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}
