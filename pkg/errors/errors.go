// Package errors defines Splinter's structured errors: sentinel values
// with machine-readable codes, process exit codes, and helpers that
// layer context, details, and suggestions onto an error.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess   = 0 // Successful execution
	ExitGeneral   = 1 // General/unknown error
	ExitInput     = 2 // Invalid input
	ExitTransport = 3 // Relay or peer communication failed
	ExitNotFound  = 4 // Resource not found
)

// SplinterError carries everything the CLI needs to report a failure.
type SplinterError struct {
	Code       string            // stable machine-readable code
	Message    string            // what went wrong, for humans
	Details    map[string]string // extra key/value context
	Suggestion string            // what the user can try next
	Cause      error             // wrapped underlying error
	ExitCode   int               // process exit code
}

func (e *SplinterError) Error() string {
	msg := e.Message

	// Details render sorted so the message is deterministic.
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SplinterError) Unwrap() error {
	return e.Cause
}

// Is matches SplinterErrors by code, so a wrapped sentinel still
// compares equal to the original.
func (e *SplinterError) Is(target error) bool {
	var t *SplinterError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &SplinterError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &SplinterError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Secret and share errors.
	ErrEmptySecret = &SplinterError{
		Code:     "EMPTY_SECRET",
		Message:  "secret must not be empty",
		ExitCode: ExitInput,
	}

	ErrMalformedShare = &SplinterError{
		Code:     "MALFORMED_SHARE",
		Message:  "share text is not in index:payload hex form",
		ExitCode: ExitInput,
	}

	ErrInvalidThreshold = &SplinterError{
		Code:     "INVALID_THRESHOLD",
		Message:  "threshold or share count out of range",
		ExitCode: ExitInput,
	}

	ErrNotEnoughShares = &SplinterError{
		Code:     "NOT_ENOUGH_SHARES",
		Message:  "fewer shares than the threshold requires",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &SplinterError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted share",
		ExitCode: ExitInput,
	}

	// Session errors.
	ErrEmptySessionName = &SplinterError{
		Code:     "EMPTY_SESSION_NAME",
		Message:  "session name must not be empty",
		ExitCode: ExitInput,
	}

	// Transport-specific errors.
	ErrTransport = &SplinterError{
		Code:     "TRANSPORT_ERROR",
		Message:  "relay communication failed",
		ExitCode: ExitTransport,
	}

	ErrRelayUnreachable = &SplinterError{
		Code:     "RELAY_UNREACHABLE",
		Message:  "could not reach the rendezvous relay",
		ExitCode: ExitTransport,
	}

	// Config-specific errors.
	ErrConfigNotFound = &SplinterError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &SplinterError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &SplinterError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &SplinterError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid format",
		ExitCode: ExitInput,
	}
)

// New builds a SplinterError with a general exit code.
func New(code, message string) *SplinterError {
	return &SplinterError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap prefixes err with context. A wrapped SplinterError keeps its
// code, details, suggestion, and exit code.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails attaches key/value context to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion attaches a next-step hint to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return &SplinterError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SplinterError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode maps an error to its process exit code; nil is success and
// unstructured errors are general failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *SplinterError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code extracts the machine-readable code from an error.
func Code(err error) string {
	var se *SplinterError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
