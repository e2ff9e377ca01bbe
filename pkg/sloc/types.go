package sloc

import (
	"fmt"
	"strings"
)

// Classification is the category of one physical line.
// When a line holds more than one kind of content the highest priority
// wins: Code > Comment > Blank.
type Classification int

const (
	Blank Classification = iota
	Comment
	Code
)

// String returns the lowercase name of the classification.
func (c Classification) String() string {
	switch c {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Code:
		return "code"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// ParseClassification parses the output of Classification.String.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blank":
		return Blank, nil
	case "comment":
		return Comment, nil
	case "code":
		return Code, nil
	default:
		return Blank, fmt.Errorf("unknown classification %q", s)
	}
}

// FileSummary holds the line totals of one file.
// Lines always equals Blank + Comment + Code.
type FileSummary struct {
	// Language is the id of the grammar used, PlainTextLanguage on fallback.
	Language string `json:"language"`

	Lines   int `json:"lines"`
	Blank   int `json:"blank"`
	Comment int `json:"comment"`
	Code    int `json:"code"`

	// Unterminated is set when the file ended inside a block comment or a
	// string. It is a diagnostic, not an error.
	Unterminated bool `json:"unterminated,omitempty"`

	// UnknownLanguage is set when the requested language had no grammar
	// and the plain-text fallback was used.
	UnknownLanguage bool `json:"unknown_language,omitempty"`
}

// Add records one classified line.
func (s *FileSummary) Add(c Classification) {
	s.Lines++
	switch c {
	case Blank:
		s.Blank++
	case Comment:
		s.Comment++
	default:
		s.Code++
	}
}

// NonBlank returns comment plus code lines (the classic "loc" figure).
func (s FileSummary) NonBlank() int {
	return s.Comment + s.Code
}

// Totals aggregates the summaries of many files.
type Totals struct {
	Files        int `json:"files"`
	Lines        int `json:"lines"`
	Blank        int `json:"blank"`
	Comment      int `json:"comment"`
	Code         int `json:"code"`
	Unterminated int `json:"unterminated"`
}

// Add folds one file summary into the totals.
func (t *Totals) Add(s FileSummary) {
	t.Files++
	t.Lines += s.Lines
	t.Blank += s.Blank
	t.Comment += s.Comment
	t.Code += s.Code
	if s.Unterminated {
		t.Unterminated++
	}
}

// NonBlank returns comment plus code lines.
func (t Totals) NonBlank() int {
	return t.Comment + t.Code
}

// FileResult pairs a counted file with its summary.
type FileResult struct {
	Path    string      `json:"path"`
	Summary FileSummary `json:"summary"`
}

// SkippedFile records a file that could not be counted.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// CountResult is the outcome of counting a batch of files.
type CountResult struct {
	Files      []FileResult      `json:"files"`
	Skipped    []SkippedFile     `json:"skipped,omitempty"`
	Totals     Totals            `json:"totals"`
	ByLanguage map[string]Totals `json:"by_language"`
}
