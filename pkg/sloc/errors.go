package sloc

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := classifier.Classify(content, "go")
//	if errors.Is(err, sloc.ErrUnreadableInput) {
//	    // skip the file and report it
//	}
var (
	// ErrLanguageNotFound indicates no grammar is registered for a language id.
	// Non-fatal: callers fall back to the plain-text grammar.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrUnreadableInput indicates content could not be decoded as text.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPathNotFound indicates the path to count does not exist.
	ErrPathNotFound = errors.New("path not found")
)

// usageErrorPatterns are message fragments cobra produces for CLI misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts 1 arg(s)",
	"missing required argument",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrPathNotFound):
		return ExitPathNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
