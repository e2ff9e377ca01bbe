package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles are bound to the renderer of one output stream, so styling is
// dropped automatically when that stream is not a colour terminal.
type Styles struct {
	Renderer *lipgloss.Renderer

	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Total   lipgloss.Style
	Border  lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Code    lipgloss.Style
	Comment lipgloss.Style
	Blank   lipgloss.Style
}

// NewStyles builds styles for w, honouring DetectMode.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	if !IsStyled(w) {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Renderer: r,
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Header:   r.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Total:    r.NewStyle().Bold(true).Padding(0, 1),
		Border:   r.NewStyle().Foreground(ColorSecondary),
		Muted:    r.NewStyle().Foreground(ColorMuted),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Error:    r.NewStyle().Foreground(ColorError),
		Code:     r.NewStyle().Foreground(ColorSuccess),
		Comment:  r.NewStyle().Foreground(ColorSecondary).Italic(true),
		Blank:    r.NewStyle().Foreground(ColorMuted),
	}
}

// ForClassification returns the style used to mark a line of class c.
func (s Styles) ForClassification(c sloc.Classification) lipgloss.Style {
	switch c {
	case sloc.Code:
		return s.Code
	case sloc.Comment:
		return s.Comment
	default:
		return s.Blank
	}
}

// Symbols for visual feedback.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "!"
	SymbolBullet  = "•"
)
