// Package logging provides concrete implementations of the sloc.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/sloc/pkg/sloc"
)

// ConsoleLogger writes log messages to stderr, or to the writer it was
// created with. Prefixes are coloured when the writer is a colour-capable
// terminal. Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex

	verbosePrefix string
	errorPrefix   string
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to out.
func NewConsoleLoggerTo(out io.Writer, verbose bool) *ConsoleLogger {
	renderer := lipgloss.NewRenderer(out)
	return &ConsoleLogger{
		verbose:       verbose,
		out:           out,
		verbosePrefix: renderer.NewStyle().Faint(true).Render("[VERBOSE]"),
		errorPrefix:   renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("[ERROR]"),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verbosePrefix+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorPrefix+" ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

// Verify ConsoleLogger implements the interface at compile time
var _ sloc.Logger = (*ConsoleLogger)(nil)
