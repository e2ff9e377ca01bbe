package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/internal/tui"
)

// WriteLanguages lists grammars with the files they claim and a short
// description of their comment syntax.
func WriteLanguages(w io.Writer, grammars []*grammar.Grammar) error {
	styles := tui.NewStyles(w)

	rows := make([][]string, 0, len(grammars))
	for _, g := range grammars {
		files := append(append([]string{}, g.Extensions...), g.Filenames...)
		rows = append(rows, []string{g.ID, g.Name, strings.Join(files, " "), commentSyntax(g)})
	}

	t := newTable(styles, -2).
		Headers("ID", "Name", "Files", "Comments").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// WriteExtensions prints one extension per line.
func WriteExtensions(w io.Writer, extensions []string) error {
	for _, ext := range extensions {
		if _, err := fmt.Fprintln(w, ext); err != nil {
			return err
		}
	}
	return nil
}

func commentSyntax(g *grammar.Grammar) string {
	var parts []string
	parts = append(parts, g.LineComments...)
	for _, d := range g.BlockComments {
		parts = append(parts, d.Open+" "+d.Close)
	}
	if len(parts) == 0 {
		return "-"
	}
	s := strings.Join(parts, ", ")
	if g.NestedBlocks {
		s += " (nested)"
	}
	return s
}
