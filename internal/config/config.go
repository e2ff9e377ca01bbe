package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/internal/linescan"
	"github.com/vvka-141/sloc/internal/report"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the counted directory.
const ConfigFileName = ".sloc.yaml"

// ExtensionsConfig mirrors the extension flags of `sloc count`.
type ExtensionsConfig struct {
	Include       []string `yaml:"include,omitempty"`
	Ignore        []string `yaml:"ignore,omitempty"`
	IgnoreDefault bool     `yaml:"ignore_default,omitempty"`
}

// DelimiterConfig is an open/close token pair.
type DelimiterConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// LanguageConfig declares a language grammar. An id that matches a
// built-in language replaces it.
type LanguageConfig struct {
	ID                 string            `yaml:"id"`
	Name               string            `yaml:"name,omitempty"`
	Extensions         []string          `yaml:"extensions,omitempty"`
	Filenames          []string          `yaml:"filenames,omitempty"`
	LineComments       []string          `yaml:"line_comments,omitempty"`
	BlockComments      []DelimiterConfig `yaml:"block_comments,omitempty"`
	Nested             bool              `yaml:"nested,omitempty"`
	Quotes             []string          `yaml:"quotes,omitempty"`
	Escape             string            `yaml:"escape,omitempty"`
	DoubledQuoteEscape bool              `yaml:"doubled_quote_escape,omitempty"`
	RawStrings         []DelimiterConfig `yaml:"raw_strings,omitempty"`
	Literals           []string          `yaml:"literals,omitempty"`
	DollarQuotes       bool              `yaml:"dollar_quotes,omitempty"`
}

type ProjectConfig struct {
	Extensions  ExtensionsConfig `yaml:"extensions,omitempty"`
	IgnorePaths []string         `yaml:"ignore_paths,omitempty"`
	Workers     int              `yaml:"workers,omitempty"`
	MixedPolicy string           `yaml:"mixed_policy,omitempty"`
	Encoding    string           `yaml:"encoding,omitempty"`
	Format      string           `yaml:"format,omitempty"`
	Languages   []LanguageConfig `yaml:"languages,omitempty"`
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates a config file. Unknown keys are rejected
// so that typos do not silently change counts.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %v: %w", path, err, sloc.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks values that yaml decoding cannot.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d: %w", c.Workers, sloc.ErrInvalidConfig))
	}
	if _, err := linescan.ParsePolicy(c.MixedPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Extensions.IgnoreDefault && len(c.Extensions.Include) == 0 {
		errs = append(errs, fmt.Errorf("extensions.ignore_default requires extensions.include: %w", sloc.ErrInvalidConfig))
	}
	if _, err := c.Grammars(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Grammars converts the declared languages into grammars.
func (c *ProjectConfig) Grammars() ([]grammar.Grammar, error) {
	grammars := make([]grammar.Grammar, 0, len(c.Languages))
	var errs []error
	for _, lc := range c.Languages {
		g, err := lc.Grammar()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		grammars = append(grammars, g)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return grammars, nil
}

// Table returns base extended with the declared languages. base is
// returned unchanged when no languages are declared.
func (c *ProjectConfig) Table(base *grammar.Table) (*grammar.Table, error) {
	if base == nil {
		base = grammar.Default()
	}
	if len(c.Languages) == 0 {
		return base, nil
	}
	grammars, err := c.Grammars()
	if err != nil {
		return nil, err
	}
	return base.With(grammars...)
}

// Grammar converts one language declaration and validates it.
func (lc LanguageConfig) Grammar() (grammar.Grammar, error) {
	g := grammar.Grammar{
		ID:                 lc.ID,
		Name:               lc.Name,
		Extensions:         lc.Extensions,
		Filenames:          lc.Filenames,
		LineComments:       lc.LineComments,
		BlockComments:      delimiters(lc.BlockComments),
		NestedBlocks:       lc.Nested,
		Quotes:             lc.Quotes,
		DoubledQuoteEscape: lc.DoubledQuoteEscape,
		RawStrings:         delimiters(lc.RawStrings),
		Literals:           lc.Literals,
		DollarQuotes:       lc.DollarQuotes,
	}

	if lc.Escape != "" {
		r, size := utf8.DecodeRuneInString(lc.Escape)
		if size != len(lc.Escape) || r == utf8.RuneError {
			return grammar.Grammar{}, fmt.Errorf("language %q: escape must be a single character, got %q: %w", lc.ID, lc.Escape, sloc.ErrInvalidConfig)
		}
		g.Escape = r
	}

	if err := g.Validate(); err != nil {
		return grammar.Grammar{}, err
	}
	return g, nil
}

func delimiters(in []DelimiterConfig) []grammar.Delimiter {
	if len(in) == 0 {
		return nil
	}
	out := make([]grammar.Delimiter, len(in))
	for i, d := range in {
		out[i] = grammar.Delimiter{Open: d.Open, Close: d.Close}
	}
	return out
}
