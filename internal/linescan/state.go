package linescan

import (
	"fmt"
	"strings"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// Mode is the lexical mode at a line boundary. Line comments never cross
// a boundary, so they have no mode.
type Mode int

const (
	Normal Mode = iota
	InBlockComment
	InString
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case InBlockComment:
		return "block-comment"
	case InString:
		return "string"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LexState is the state carried from one line to the next.
// The zero value is Normal.
type LexState struct {
	Mode Mode

	// Depth is the block comment nesting depth (>= 1 in InBlockComment).
	// It stays 1 for grammars without nesting.
	Depth int

	// Block is the index of the active pair in Grammar.BlockComments.
	Block int

	// Close is the delimiter that ends the open string.
	Close string

	// Raw marks a raw string: no escape processing.
	Raw bool
}

// Open reports whether the state is inside a construct that has not been
// closed yet.
func (s LexState) Open() bool {
	return s.Mode != Normal
}

func (s LexState) String() string {
	switch s.Mode {
	case InBlockComment:
		return fmt.Sprintf("block-comment(depth=%d)", s.Depth)
	case InString:
		if s.Raw {
			return fmt.Sprintf("raw-string(%s)", s.Close)
		}
		return fmt.Sprintf("string(%s)", s.Close)
	default:
		return s.Mode.String()
	}
}

// Policy decides lines that close a block comment and then carry code.
type Policy int

const (
	// PolicyCodeWins classifies "*/ code();" as code.
	PolicyCodeWins Policy = iota

	// PolicyCommentWins classifies any line that began inside a block
	// comment as comment, whatever follows the close.
	PolicyCommentWins
)

// ParsePolicy accepts "code" or "comment". An empty string is PolicyCodeWins.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "code":
		return PolicyCodeWins, nil
	case "comment":
		return PolicyCommentWins, nil
	default:
		return PolicyCodeWins, fmt.Errorf("mixed policy %q must be \"code\" or \"comment\": %w", s, sloc.ErrInvalidConfig)
	}
}

func (p Policy) String() string {
	if p == PolicyCommentWins {
		return "comment"
	}
	return "code"
}
