package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/internal/logging"
	"github.com/vvka-141/sloc/internal/report"
)

type languagesFlagValues struct {
	extensions bool
	configPath string
}

func newLanguagesCmd() *cobra.Command {
	var flags languagesFlagValues

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their extensions",
		Long: `Languages lists the built-in grammars plus any declared in .sloc.yaml in the
current directory (or the file given with --config).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(cmd, &flags)
		},
	}

	cmd.Flags().BoolVar(&flags.extensions, "extensions", false, "Print only the recognised extensions, one per line")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file declaring extra languages")

	return cmd
}

func runLanguages(cmd *cobra.Command, flags *languagesFlagValues) error {
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	cfg, err := loadProjectConfig(".", flags.configPath, logger)
	if err != nil {
		return err
	}
	table, err := cfg.Table(grammar.Default())
	if err != nil {
		return err
	}

	if flags.extensions {
		return report.WriteExtensions(cmd.OutOrStdout(), table.Extensions())
	}
	return report.WriteLanguages(cmd.OutOrStdout(), table.Languages())
}

// completeLanguageIDs offers the built-in language ids.
func completeLanguageIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	languages := grammar.Default().Languages()
	ids := make([]string, 0, len(languages))
	for _, g := range languages {
		ids = append(ids, g.ID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
