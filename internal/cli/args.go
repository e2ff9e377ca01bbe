package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePath validates that exactly one path argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>

Usage: %s

Example:
  %s ./src -e go,sql`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireFile validates that exactly one file argument is provided.
func RequireFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <file>

Usage: %s

Example:
  %s main.go`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
