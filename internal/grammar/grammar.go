// Package grammar holds the per-language comment and string syntax tables.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// Delimiter is an opening/closing token pair.
type Delimiter struct {
	Open  string
	Close string
}

// Grammar holds the lexical rules the line scanner needs for one language.
//
// Markers are tried in category order at every position: literals, raw
// strings (then dollar quotes), quotes, comment openers. Between a block
// opener and a line marker matching at the same position the longer one
// wins, the block opener on a tie. Within a category the first declared
// marker that matches wins, so longer markers that share a prefix with
// shorter ones (""" before ") must be declared first.
type Grammar struct {
	// ID is the lookup key (lowercase).
	ID string

	// Name is the human readable language name.
	Name string

	// Extensions are file extensions including the dot (".go").
	Extensions []string

	// Filenames are exact base names mapped to this language ("Makefile").
	Filenames []string

	LineComments  []string
	BlockComments []Delimiter

	// NestedBlocks makes a block opener inside a block comment of the same
	// pair increase the depth.
	NestedBlocks bool

	// Quotes open and close string or character literals.
	Quotes []string

	// Escape makes the following rune literal inside a quoted string.
	// Zero means the language has no escape character.
	Escape rune

	// DoubledQuoteEscape treats a doubled closing quote ('') as a literal
	// quote instead of the end of the string.
	DoubledQuoteEscape bool

	// RawStrings are literals without escape processing.
	RawStrings []Delimiter

	// Literals are opaque code tokens, typically character literals that
	// hold a quote ('"' in Rust, $" in Erlang).
	Literals []string

	// DollarQuotes enables PostgreSQL dollar quoting: $$ and $tag$ open a
	// raw string closed by the same token.
	DollarQuotes bool
}

// HasComments reports whether the grammar declares any comment syntax.
func (g *Grammar) HasComments() bool {
	return len(g.LineComments) > 0 || len(g.BlockComments) > 0
}

// Validate checks that the grammar can drive the scanner.
// It returns every problem found, joined.
func (g *Grammar) Validate() error {
	var errs []error

	if strings.TrimSpace(g.ID) == "" {
		errs = append(errs, fmt.Errorf("grammar id is required: %w", sloc.ErrInvalidConfig))
	}

	for i, marker := range g.LineComments {
		if marker == "" {
			errs = append(errs, fmt.Errorf("grammar %q: line comment %d is empty: %w", g.ID, i, sloc.ErrInvalidConfig))
		}
	}
	for i, d := range g.BlockComments {
		if d.Open == "" || d.Close == "" {
			errs = append(errs, fmt.Errorf("grammar %q: block comment %d needs open and close: %w", g.ID, i, sloc.ErrInvalidConfig))
		}
	}
	if g.NestedBlocks {
		for _, d := range g.BlockComments {
			if d.Open == d.Close {
				errs = append(errs, fmt.Errorf("grammar %q: block comment %q cannot nest with identical delimiters: %w", g.ID, d.Open, sloc.ErrInvalidConfig))
			}
		}
	}
	for i, q := range g.Quotes {
		if q == "" {
			errs = append(errs, fmt.Errorf("grammar %q: quote %d is empty: %w", g.ID, i, sloc.ErrInvalidConfig))
		}
	}
	for i, d := range g.RawStrings {
		if d.Open == "" || d.Close == "" {
			errs = append(errs, fmt.Errorf("grammar %q: raw string %d needs open and close: %w", g.ID, i, sloc.ErrInvalidConfig))
		}
	}
	for i, lit := range g.Literals {
		if lit == "" {
			errs = append(errs, fmt.Errorf("grammar %q: literal %d is empty: %w", g.ID, i, sloc.ErrInvalidConfig))
		}
	}
	if g.Escape != 0 && len(g.Quotes) == 0 {
		errs = append(errs, fmt.Errorf("grammar %q: escape character without quotes: %w", g.ID, sloc.ErrInvalidConfig))
	}
	for _, ext := range g.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("grammar %q: extension %q must start with a dot: %w", g.ID, ext, sloc.ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

var plainText = &Grammar{
	ID:   sloc.PlainTextLanguage,
	Name: "Plain Text",
}

// PlainText returns the fallback grammar: no comment or string syntax,
// every non-blank line is code.
func PlainText() *Grammar {
	return plainText
}
