package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// Table maps language ids, file extensions and file names to grammars.
// A Table is immutable once built and safe for concurrent use by multiple
// goroutines. Grammars returned by a Table must be treated as read-only.
type Table struct {
	byID   map[string]*Grammar
	byExt  map[string]string
	byName map[string]string
}

// NewTable builds a table from grammars. Later grammars with the same id
// replace earlier ones, and later extension claims win.
func NewTable(grammars ...Grammar) (*Table, error) {
	t := &Table{
		byID:   make(map[string]*Grammar, len(grammars)),
		byExt:  make(map[string]string),
		byName: make(map[string]string),
	}
	if err := t.add(grammars); err != nil {
		return nil, err
	}
	return t, nil
}

// With returns a new table holding the receiver's grammars plus grammars.
// The receiver is not modified.
func (t *Table) With(grammars ...Grammar) (*Table, error) {
	next := &Table{
		byID:   make(map[string]*Grammar, len(t.byID)+len(grammars)),
		byExt:  make(map[string]string, len(t.byExt)),
		byName: make(map[string]string, len(t.byName)),
	}
	for id, g := range t.byID {
		next.byID[id] = g
	}
	for ext, id := range t.byExt {
		next.byExt[ext] = id
	}
	for name, id := range t.byName {
		next.byName[name] = id
	}
	if err := next.add(grammars); err != nil {
		return nil, err
	}
	return next, nil
}

func (t *Table) add(grammars []Grammar) error {
	var errs []error
	for i := range grammars {
		g := grammars[i]
		g.ID = strings.ToLower(strings.TrimSpace(g.ID))
		if err := g.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if g.Name == "" {
			g.Name = g.ID
		}
		t.byID[g.ID] = &g
		for _, ext := range g.Extensions {
			t.byExt[strings.ToLower(ext)] = g.ID
		}
		for _, name := range g.Filenames {
			t.byName[name] = g.ID
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the grammar registered for id (case-insensitive).
// The error wraps sloc.ErrLanguageNotFound when id is unknown; callers
// fall back to PlainText.
func (t *Table) Lookup(id string) (*Grammar, error) {
	g, ok := t.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, sloc.ErrLanguageNotFound)
	}
	return g, nil
}

// Detect maps a file path to a language id using exact file names first,
// then the longest dotted suffix of the base name ("x.d.ts" tries ".d.ts"
// before ".ts"). It reports false when nothing matches.
func (t *Table) Detect(path string) (string, bool) {
	base := filepath.Base(path)
	if id, ok := t.byName[base]; ok {
		return id, true
	}

	lower := strings.ToLower(base)
	for i := strings.IndexByte(lower, '.'); i >= 0; {
		if id, ok := t.byExt[lower[i:]]; ok {
			return id, true
		}
		next := strings.IndexByte(lower[i+1:], '.')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return "", false
}

// Languages returns all grammars sorted by id.
func (t *Table) Languages() []*Grammar {
	out := make([]*Grammar, 0, len(t.byID))
	for _, g := range t.byID {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Extensions returns every registered extension, sorted.
func (t *Table) Extensions() []string {
	out := make([]string, 0, len(t.byExt))
	for ext := range t.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

var defaultTable = mustTable(builtinGrammars())

func mustTable(grammars []Grammar) *Table {
	t, err := NewTable(grammars...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in grammar table: %v", err))
	}
	return t
}

// Default returns the built-in table. It is built once at package
// initialisation and never modified.
func Default() *Table {
	return defaultTable
}
