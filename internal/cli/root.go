package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const rootLong = `sloc counts source lines: every line of a file is classified as blank,
comment or code using a per-language grammar of comment markers, block
comment pairs and string delimiters. A comment marker inside a string is
not a comment, and block comments may span (and in some languages nest
across) lines.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or flags
  11 - Path not found
  12 - Interrupted before counting finished`

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sloc",
		Short:        "Count blank, comment and code lines",
		Long:         rootLong,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	root.AddCommand(
		newCountCmd(),
		newAnnotateCmd(),
		newLanguagesCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return newRootCmd().Execute()
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
