// Command sloc counts code, comment and blank lines in source trees.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/sloc/internal/cli"
	"github.com/vvka-141/sloc/pkg/sloc"
)

func main() {
	os.Exit(run(cli.Execute, os.Stderr))
}

// run executes the command tree and maps its outcome to an exit code.
// A panic is reported as an internal error with its stack.
func run(execute func() error, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "sloc: internal error: %v\n%s\n", r, debug.Stack())
			code = sloc.ExitPanic
		}
	}()
	return sloc.ExitCodeForError(execute())
}
