package linescan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// LineScanner classifies lines for one grammar.
type LineScanner struct {
	grammar *grammar.Grammar
	policy  Policy
}

// NewLineScanner creates a scanner for g. A nil grammar scans as plain text.
func NewLineScanner(g *grammar.Grammar, policy Policy) *LineScanner {
	if g == nil {
		g = grammar.PlainText()
	}
	return &LineScanner{
		grammar: g,
		policy:  policy,
	}
}

// Grammar returns the grammar the scanner was built with.
func (s *LineScanner) Grammar() *grammar.Grammar {
	return s.grammar
}

// Scan classifies one line (without its line terminator) given the state
// left by the previous line, and returns the state for the next line.
//
// Handles:
//   - Line comments: marker to end of line
//   - Block comments: optionally nested, may span lines
//   - Quoted strings: escape character and doubled-quote escapes, may span lines
//   - Raw strings: no escapes, may span lines
//   - Dollar quotes ($$, $tag$): raw strings closed by the same tag
//   - Literals: opaque code tokens such as '"'
func (s *LineScanner) Scan(line string, in LexState) (sloc.Classification, LexState) {
	if !s.valid(in) {
		in = LexState{}
	}

	if isBlank(line) {
		switch in.Mode {
		case InBlockComment:
			return sloc.Comment, in
		case InString:
			return sloc.Code, in
		default:
			return sloc.Blank, in
		}
	}

	g := s.grammar
	startedInComment := in.Mode == InBlockComment
	hasCode, hasComment := false, false
	state := in
	i := 0

	for i < len(line) {
		rest := line[i:]

		switch state.Mode {
		case InBlockComment:
			hasComment = true
			pair := g.BlockComments[state.Block]
			if pair.Close != "" && strings.HasPrefix(rest, pair.Close) {
				i += len(pair.Close)
				state.Depth--
				if state.Depth <= 0 {
					state = LexState{}
				}
			} else if g.NestedBlocks && pair.Open != "" && strings.HasPrefix(rest, pair.Open) {
				i += len(pair.Open)
				state.Depth++
			} else {
				i += runeLen(rest)
			}

		case InString:
			hasCode = true
			r, n := utf8.DecodeRuneInString(rest)
			if !state.Raw && g.Escape != 0 && r == g.Escape {
				// The escaped rune is consumed with the escape.
				i += n
				if i < len(line) {
					i += runeLen(line[i:])
				}
			} else if strings.HasPrefix(rest, state.Close) {
				if !state.Raw && g.DoubledQuoteEscape && strings.HasPrefix(rest[len(state.Close):], state.Close) {
					i += 2 * len(state.Close)
				} else {
					i += len(state.Close)
					state = LexState{}
				}
			} else {
				i += n
			}

		default:
			r, n := utf8.DecodeRuneInString(rest)
			if unicode.IsSpace(r) {
				i += n
				continue
			}
			if lit, ok := matchPrefix(rest, g.Literals); ok {
				hasCode = true
				i += len(lit)
				continue
			}
			if d, ok := matchDelimiter(rest, g.RawStrings); ok {
				hasCode = true
				state = LexState{Mode: InString, Close: d.Close, Raw: true}
				i += len(d.Open)
				continue
			}
			if g.DollarQuotes {
				if tag := dollarTag(rest); tag != "" {
					hasCode = true
					state = LexState{Mode: InString, Close: tag, Raw: true}
					i += len(tag)
					continue
				}
			}
			if q, ok := matchPrefix(rest, g.Quotes); ok {
				hasCode = true
				state = LexState{Mode: InString, Close: q}
				i += len(q)
				continue
			}
			idx, isBlock := matchBlock(rest, g.BlockComments)
			marker, isLine := matchPrefix(rest, g.LineComments)
			if isBlock && isLine && len(marker) > len(g.BlockComments[idx].Open) {
				isBlock = false
			}
			if isBlock {
				hasComment = true
				state = LexState{Mode: InBlockComment, Depth: 1, Block: idx}
				i += len(g.BlockComments[idx].Open)
				continue
			}
			if isLine {
				hasComment = true
				return s.classify(hasCode, hasComment, startedInComment), state
			}
			hasCode = true
			i += n
		}
	}

	return s.classify(hasCode, hasComment, startedInComment), state
}

// valid reports whether in can be resumed with this scanner's grammar.
func (s *LineScanner) valid(in LexState) bool {
	switch in.Mode {
	case Normal:
		return true
	case InBlockComment:
		return in.Depth > 0 && in.Block >= 0 && in.Block < len(s.grammar.BlockComments)
	case InString:
		return in.Close != ""
	default:
		return false
	}
}

func (s *LineScanner) classify(hasCode, hasComment, startedInComment bool) sloc.Classification {
	switch {
	case hasCode && hasComment && startedInComment && s.policy == PolicyCommentWins:
		return sloc.Comment
	case hasCode:
		return sloc.Code
	case hasComment:
		return sloc.Comment
	default:
		return sloc.Blank
	}
}

// matchPrefix returns the first marker that prefixes s.
func matchPrefix(s string, markers []string) (string, bool) {
	for _, m := range markers {
		if m != "" && strings.HasPrefix(s, m) {
			return m, true
		}
	}
	return "", false
}

// dollarTag returns the $$ or $tag$ token that starts s, or "" if none
// does. A tag is letters, digits and underscores and cannot start with a
// digit, so positional parameters ($1) are not quotes.
func dollarTag(s string) string {
	if !strings.HasPrefix(s, "$") {
		return ""
	}
	for i, r := range s[1:] {
		switch {
		case r == '$':
			return s[:i+2]
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return ""
		}
	}
	return ""
}

// matchDelimiter returns the first delimiter whose opener prefixes s.
func matchDelimiter(s string, delims []grammar.Delimiter) (grammar.Delimiter, bool) {
	for _, d := range delims {
		if d.Open != "" && d.Close != "" && strings.HasPrefix(s, d.Open) {
			return d, true
		}
	}
	return grammar.Delimiter{}, false
}

// matchBlock returns the index of the first block pair opening at s.
func matchBlock(s string, pairs []grammar.Delimiter) (int, bool) {
	for i, d := range pairs {
		if d.Open != "" && d.Close != "" && strings.HasPrefix(s, d.Open) {
			return i, true
		}
	}
	return 0, false
}

func runeLen(s string) int {
	_, n := utf8.DecodeRuneInString(s)
	return n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
