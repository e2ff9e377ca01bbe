package report

import (
	"fmt"
	"io"

	"github.com/vvka-141/sloc/internal/classifier"
	"github.com/vvka-141/sloc/internal/tui"
)

// classWidth fits the longest classification name ("comment").
const classWidth = 7

// WriteAnnotated prints each line prefixed by its number and class:
//
//	   3 comment | // comment text
func WriteAnnotated(w io.Writer, lines []classifier.AnnotatedLine) error {
	styles := tui.NewStyles(w)
	numWidth := len(fmt.Sprint(len(lines)))

	for _, line := range lines {
		label := fmt.Sprintf("%-*s", classWidth, line.Classification.String())
		_, err := fmt.Fprintf(w, "%s %s %s %s\n",
			styles.Muted.Render(fmt.Sprintf("%*d", numWidth, line.Number)),
			styles.ForClassification(line.Classification).Render(label),
			styles.Border.Render("|"),
			line.Text,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
