package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// jsonLanguage is one entry of the per-language breakdown.
type jsonLanguage struct {
	Language string `json:"language"`
	sloc.Totals
}

type jsonReport struct {
	Totals    sloc.Totals        `json:"totals"`
	Languages []jsonLanguage     `json:"languages"`
	Files     []sloc.FileResult  `json:"files,omitempty"`
	Skipped   []sloc.SkippedFile `json:"skipped,omitempty"`
}

// WriteJSON writes result as an indented JSON document. Languages are
// ordered by code lines, descending.
func WriteJSON(w io.Writer, result sloc.CountResult, opts Options) error {
	doc := jsonReport{
		Totals:    result.Totals,
		Languages: sortedLanguages(result),
		Skipped:   result.Skipped,
	}
	if opts.ByFile {
		doc.Files = result.Files
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// sortedLanguages orders the per-language totals by code lines, then id.
func sortedLanguages(result sloc.CountResult) []jsonLanguage {
	out := make([]jsonLanguage, 0, len(result.ByLanguage))
	for lang, totals := range result.ByLanguage {
		out = append(out, jsonLanguage{Language: lang, Totals: totals})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code > out[j].Code
		}
		return out[i].Language < out[j].Language
	})
	return out
}
