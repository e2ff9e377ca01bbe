package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how output is rendered.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and piped output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading a colour terminal.
	ModeStyled
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// DetectMode determines whether output written to w should be styled.
//
// Returns ModePlain if:
//   - SLOC_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (https://no-color.org)
//   - w is not a terminal (pipes, files, buffers)
//
// Returns ModeStyled otherwise.
func DetectMode(w io.Writer) Mode {
	if os.Getenv("SLOC_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	f, ok := w.(fdWriter)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// IsStyled is a convenience function that returns true if output to w
// should be styled.
func IsStyled(w io.Writer) bool {
	return DetectMode(w) == ModeStyled
}
