package classifier

import (
	"golang.org/x/text/encoding"

	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/internal/linescan"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// Classifier counts the lines of whole files. It performs no I/O and holds
// no per-file state, so one Classifier serves any number of goroutines.
type Classifier struct {
	table    *grammar.Table
	policy   linescan.Policy
	encoding encoding.Encoding
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	policy   linescan.Policy
	encoding string
}

// WithPolicy selects how lines that close a block comment and then carry
// code are counted.
func WithPolicy(p linescan.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithEncoding declares the encoding of content without a byte order mark,
// by IANA name ("windows-1252", "ISO-8859-1"). The default is UTF-8.
func WithEncoding(name string) Option {
	return func(o *options) { o.encoding = name }
}

// New creates a Classifier over table. A nil table uses grammar.Default().
func New(table *grammar.Table, opts ...Option) (*Classifier, error) {
	if table == nil {
		table = grammar.Default()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := resolveEncoding(o.encoding)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		table:    table,
		policy:   o.policy,
		encoding: enc,
	}, nil
}

// Classify counts blank, comment and code lines of content.
//
// An unknown languageID is not an error: the plain-text grammar is used and
// the summary is flagged UnknownLanguage. Content that ends inside a block
// comment or string is flagged Unterminated. Content that is not text
// returns an error wrapping sloc.ErrUnreadableInput.
func (c *Classifier) Classify(content []byte, languageID string) (sloc.FileSummary, error) {
	return c.classify(content, languageID, nil)
}

// ClassifyLines is Classify plus the classification of every line, in order.
func (c *Classifier) ClassifyLines(content []byte, languageID string) ([]sloc.Classification, sloc.FileSummary, error) {
	var lines []sloc.Classification
	summary, err := c.classify(content, languageID, func(_ string, cl sloc.Classification) {
		lines = append(lines, cl)
	})
	if err != nil {
		return nil, sloc.FileSummary{}, err
	}
	return lines, summary, nil
}

// AnnotatedLine is one decoded line with its classification.
type AnnotatedLine struct {
	Number         int
	Text           string
	Classification sloc.Classification
}

// Annotate returns every decoded line of content with its classification.
func (c *Classifier) Annotate(content []byte, languageID string) ([]AnnotatedLine, sloc.FileSummary, error) {
	var lines []AnnotatedLine
	summary, err := c.classify(content, languageID, func(text string, cl sloc.Classification) {
		lines = append(lines, AnnotatedLine{Number: len(lines) + 1, Text: text, Classification: cl})
	})
	if err != nil {
		return nil, sloc.FileSummary{}, err
	}
	return lines, summary, nil
}

func (c *Classifier) classify(content []byte, languageID string, record func(string, sloc.Classification)) (sloc.FileSummary, error) {
	text, err := decode(content, c.encoding)
	if err != nil {
		return sloc.FileSummary{}, err
	}

	scanner, unknown := c.scannerFor(languageID)
	summary := sloc.FileSummary{
		Language:        scanner.Grammar().ID,
		UnknownLanguage: unknown,
	}

	var state linescan.LexState
	forEachLine(text, func(line string) {
		var cl sloc.Classification
		cl, state = scanner.Scan(line, state)
		summary.Add(cl)
		if record != nil {
			record(line, cl)
		}
	})
	summary.Unterminated = state.Open()

	return summary, nil
}

// scannerFor resolves languageID, falling back to plain text.
func (c *Classifier) scannerFor(languageID string) (*linescan.LineScanner, bool) {
	g, err := c.table.Lookup(languageID)
	if err != nil {
		return linescan.NewLineScanner(grammar.PlainText(), c.policy), true
	}
	return linescan.NewLineScanner(g, c.policy), false
}

// Verify Classifier implements the interface at compile time
var _ sloc.Classifier = (*Classifier)(nil)
