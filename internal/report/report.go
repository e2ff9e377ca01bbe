// Package report renders count results as text tables or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// Format selects the output renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a --format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json): %w", s, sloc.ErrInvalidConfig)
	}
}

// Options controls what a report includes.
type Options struct {
	// ByFile adds one row (or JSON object) per counted file.
	ByFile bool
}

// Write renders result to w in format.
func Write(w io.Writer, result sloc.CountResult, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, result, opts)
	case FormatText, "":
		return WriteText(w, result, opts)
	default:
		return fmt.Errorf("unknown format %q: %w", format, sloc.ErrInvalidConfig)
	}
}
