package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	splerr "github.com/mrz1836/splinter/pkg/errors"
)

// ErrorOutput is the JSON envelope errors render inside.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the structured error fields.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError renders err for the user in the given format. Structured
// errors keep their code, details, and suggestion; anything else renders
// as a general error.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}
	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

func formatErrorJSON(w io.Writer, err error) error {
	detail := ErrorDetail{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		ExitCode: splerr.ExitGeneral,
	}

	var se *splerr.SplinterError
	if errors.As(err, &se) {
		detail = ErrorDetail{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: se.Suggestion,
			ExitCode:   se.ExitCode,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ErrorOutput{Error: detail})
}

func formatErrorText(w io.Writer, err error) error {
	var sb strings.Builder

	var se *splerr.SplinterError
	if !errors.As(err, &se) {
		sb.WriteString(fmt.Sprintf("Error: %s\n", err.Error()))
		_, writeErr := io.WriteString(w, sb.String())
		return writeErr
	}

	sb.WriteString(fmt.Sprintf("Error: %s\n", se.Message))
	if len(se.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		for k, v := range se.Details {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}
	if se.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", se.Suggestion))
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess renders a success message in the given format.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
