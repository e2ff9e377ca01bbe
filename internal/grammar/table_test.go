package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sloc/pkg/sloc"
)

func TestDefault_BuiltinsAreValid(t *testing.T) {
	for _, g := range Default().Languages() {
		t.Run(g.ID, func(t *testing.T) {
			assert.NoError(t, g.Validate())
			assert.NotEmpty(t, g.Name)
		})
	}
}

func TestDefault_CoversOriginalExtensions(t *testing.T) {
	exts := []string{
		"as", "asm", "c", "cc", "coffee", "cpp", "cs", "css", "cxx", "elm", "erl", "ex", "eex",
		"go", "groovy", "h", "hbs", "handlebars", "hpp", "hs", "htm", "html", "hx", "hxx",
		"jade", "java", "js", "jsx", "less", "lua", "m", "mm", "mustache", "nut", "pl", "php",
		"php5", "py", "rb", "rs", "sass", "scala", "scss", "sh", "styl", "swift", "ts", "tsx",
		"vb", "xml", "yaml", "yml",
	}
	for _, ext := range exts {
		t.Run(ext, func(t *testing.T) {
			id, ok := Default().Detect("file." + ext)
			require.True(t, ok, "no language for .%s", ext)
			_, err := Default().Lookup(id)
			assert.NoError(t, err)
		})
	}
}

func TestLookup(t *testing.T) {
	g, err := Default().Lookup("Go")
	require.NoError(t, err)
	assert.Equal(t, "go", g.ID)
	assert.Equal(t, []string{"//"}, g.LineComments)

	_, err = Default().Lookup("brainfuck")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sloc.ErrLanguageNotFound))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"main.go", "go", true},
		{"src/LIB.RS", "rust", true},
		{"/abs/path/Makefile", "makefile", true},
		{"Dockerfile", "dockerfile", true},
		{"types.d.ts", "typescript", true},
		{"archive.tar.gz", "", false},
		{"README", "", false},
		{".bashrc", "", false},
		{"query.SQL", "sql", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := Default().Detect(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestWith_AddsWithoutMutatingReceiver(t *testing.T) {
	base := Default()
	extended, err := base.With(Grammar{
		ID:           "Zig",
		Extensions:   []string{".zig"},
		LineComments: []string{"//"},
		Quotes:       []string{`"`},
		Escape:       '\\',
	})
	require.NoError(t, err)

	g, err := extended.Lookup("zig")
	require.NoError(t, err)
	assert.Equal(t, "zig", g.Name, "name defaults to id")

	id, ok := extended.Detect("build.zig")
	assert.True(t, ok)
	assert.Equal(t, "zig", id)

	_, err = base.Lookup("zig")
	assert.True(t, errors.Is(err, sloc.ErrLanguageNotFound))
	_, ok = base.Detect("build.zig")
	assert.False(t, ok)
}

func TestWith_OverridesExtensionClaim(t *testing.T) {
	extended, err := Default().With(Grammar{
		ID:           "prolog",
		Extensions:   []string{".pl"},
		LineComments: []string{"%"},
	})
	require.NoError(t, err)

	id, ok := extended.Detect("rules.pl")
	require.True(t, ok)
	assert.Equal(t, "prolog", id)

	id, _ = Default().Detect("rules.pl")
	assert.Equal(t, "perl", id)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		wantErr bool
	}{
		{"valid", Grammar{ID: "x", LineComments: []string{"#"}}, false},
		{"missing id", Grammar{LineComments: []string{"#"}}, true},
		{"empty line marker", Grammar{ID: "x", LineComments: []string{""}}, true},
		{"half block", Grammar{ID: "x", BlockComments: []Delimiter{{Open: "/*"}}}, true},
		{"nested identical", Grammar{ID: "x", BlockComments: []Delimiter{{Open: "###", Close: "###"}}, NestedBlocks: true}, true},
		{"empty quote", Grammar{ID: "x", Quotes: []string{""}}, true},
		{"escape without quotes", Grammar{ID: "x", Escape: '\\'}, true},
		{"bad extension", Grammar{ID: "x", Extensions: []string{"go"}}, true},
		{"half raw string", Grammar{ID: "x", RawStrings: []Delimiter{{Close: "`"}}}, true},
		{"empty literal", Grammar{ID: "x", Literals: []string{""}}, true},
		{"dollar quotes alone", Grammar{ID: "x", DollarQuotes: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grammar.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, sloc.ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTable_RejectsInvalid(t *testing.T) {
	_, err := NewTable(Grammar{ID: ""})
	assert.True(t, errors.Is(err, sloc.ErrInvalidConfig))
}

func TestPlainText(t *testing.T) {
	g := PlainText()
	assert.Equal(t, sloc.PlainTextLanguage, g.ID)
	assert.False(t, g.HasComments())
	assert.Empty(t, g.Quotes)
}
