package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/sloc/internal/tui"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// WriteText writes the language breakdown, an optional per-file table and
// the skipped files as terminal tables.
func WriteText(w io.Writer, result sloc.CountResult, opts Options) error {
	styles := tui.NewStyles(w)

	if opts.ByFile && len(result.Files) > 0 {
		if _, err := fmt.Fprintln(w, fileTable(styles, result).String()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, languageTable(styles, result).String()); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, summaryTable(styles, result.Totals).String()); err != nil {
		return err
	}

	if result.Totals.Unterminated > 0 {
		msg := fmt.Sprintf("%s %d file(s) end inside a comment or string", tui.SymbolWarning, result.Totals.Unterminated)
		if _, err := fmt.Fprintln(w, styles.Warning.Render(msg)); err != nil {
			return err
		}
	}

	for _, skipped := range result.Skipped {
		msg := fmt.Sprintf("%s skipped %s: %s", tui.SymbolCross, skipped.Path, skipped.Reason)
		if _, err := fmt.Fprintln(w, styles.Muted.Render(msg)); err != nil {
			return err
		}
	}

	return nil
}

func newTable(styles tui.Styles, footerRow int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = styles.Header
			case row == footerRow:
				s = styles.Total
			default:
				s = styles.Cell
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

func languageTable(styles tui.Styles, result sloc.CountResult) *table.Table {
	langs := sortedLanguages(result)
	rows := make([][]string, 0, len(langs)+1)
	for _, l := range langs {
		rows = append(rows, totalsRow(l.Language, l.Totals))
	}
	rows = append(rows, totalsRow("Total", result.Totals))

	return newTable(styles, len(rows)-1).
		Headers("Language", "Files", "Lines", "Code", "Comment", "Blank").
		Rows(rows...)
}

func fileTable(styles tui.Styles, result sloc.CountResult) *table.Table {
	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		path := f.Path
		if f.Summary.Unterminated {
			path += " " + tui.SymbolWarning
		}
		s := f.Summary
		rows = append(rows, []string{
			path, s.Language, itoa(s.Lines), itoa(s.Code), itoa(s.Comment), itoa(s.Blank),
		})
	}

	return newTable(styles, -2).
		Headers("File", "Language", "Lines", "Code", "Comment", "Blank").
		Rows(rows...)
}

// summaryTable carries the classic five figures: source lines, comment
// lines, blank lines, files and total non-blank lines.
func summaryTable(styles tui.Styles, t sloc.Totals) *table.Table {
	return newTable(styles, 4).
		Rows(
			[]string{"Source lines (code)", itoa(t.Code)},
			[]string{"Comment lines", itoa(t.Comment)},
			[]string{"Blank lines", itoa(t.Blank)},
			[]string{"Files counted", itoa(t.Files)},
			[]string{"Total (code + comment)", itoa(t.NonBlank())},
		)
}

func totalsRow(label string, t sloc.Totals) []string {
	return []string{label, itoa(t.Files), itoa(t.Lines), itoa(t.Code), itoa(t.Comment), itoa(t.Blank)}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
