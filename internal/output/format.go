// Package output handles terminal output for the Splinter CLI: text or
// JSON rendering, error formatting, and QR codes for shares.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects how command results are rendered.
type Format string

const (
	// FormatText renders human-readable lines.
	FormatText Format = "text"
	// FormatJSON renders indented JSON objects.
	FormatJSON Format = "json"
	// FormatAuto picks text on a TTY and JSON otherwise.
	FormatAuto Format = "auto"
)

// Formatter renders values in one resolved format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter wraps w with the given format.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format reports the resolved format.
func (f *Formatter) Format() Format { return f.format }

// Writer exposes the underlying writer.
func (f *Formatter) Writer() io.Writer { return f.writer }

// IsJSON reports whether results render as JSON.
func (f *Formatter) IsJSON() bool { return f.format == FormatJSON }

// Print renders v in the resolved format.
func (f *Formatter) Print(v any) error {
	if f.IsJSON() {
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, val.String())
		return err
	default:
		_, err := fmt.Fprintf(f.writer, "%v\n", val)
		return err
	}
}

// Printf writes formatted text regardless of the resolved format.
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f.writer, format, args...)
	return err
}

// Println writes a text line regardless of the resolved format.
func (f *Formatter) Println(args ...any) error {
	_, err := fmt.Fprintln(f.writer, args...)
	return err
}

// DetectFormat resolves FormatAuto against the writer: text when w is a
// terminal, JSON when output is piped. An explicit format wins.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto {
		return explicit
	}
	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: Fd fits in int on supported platforms
			return FormatText
		}
	}
	return FormatJSON
}

// ParseFormat reads a format name; anything unrecognized means auto.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatAuto
	}
}
