package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sloc/internal/classifier"
	"github.com/vvka-141/sloc/internal/files/filesystem"
	"github.com/vvka-141/sloc/internal/logging"
	"github.com/vvka-141/sloc/internal/report"
	"github.com/vvka-141/sloc/pkg/sloc"
)

type annotateFlagValues struct {
	language    string
	mixedPolicy string
	encoding    string
	configPath  string
}

func newAnnotateCmd() *cobra.Command {
	var flags annotateFlagValues

	cmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Print each line of a file with its classification",
		Long: `Annotate classifies one file and prints every line prefixed by its number
and class (blank, comment or code). The summary goes to stderr so the
annotated listing can be piped.

The language is detected from the file name unless --language is given.`,
		Example: `  sloc annotate main.go
  sloc annotate schema.tpl --language sql`,
		Args: RequireFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, &flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.language, "language", "l", "", "Language id to use instead of detecting it (see 'sloc languages')")
	f.StringVar(&flags.mixedPolicy, "mixed-policy", "", "How a line that closes a block comment and then has code counts: code|comment")
	f.StringVar(&flags.encoding, "encoding", "", "Encoding of a file without a byte order mark, by IANA name (default UTF-8)")
	f.StringVar(&flags.configPath, "config", "", "Config file to use instead of .sloc.yaml next to the file")

	_ = cmd.RegisterFlagCompletionFunc("language", completeLanguageIDs)
	_ = cmd.RegisterFlagCompletionFunc("mixed-policy",
		cobra.FixedCompletions([]string{"code", "comment"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func runAnnotate(cmd *cobra.Command, args []string, flags *annotateFlagValues) error {
	path := args[0]
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	cfg, err := loadProjectConfig(path, flags.configPath, logger)
	if err != nil {
		return err
	}
	engine, err := resolveEngineSettings(cmd, cfg, flags.mixedPolicy, flags.encoding)
	if err != nil {
		return err
	}

	language := flags.language
	if language == "" {
		id, ok := engine.table.Detect(path)
		if !ok {
			logger.Verbose("No language detected for %s", path)
		}
		language = id
	}

	content, err := filesystem.NewOSFileSystem().ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, sloc.ErrPathNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	c, err := classifier.New(engine.table,
		classifier.WithPolicy(engine.policy),
		classifier.WithEncoding(engine.encoding))
	if err != nil {
		return err
	}

	lines, summary, err := c.Annotate(content, language)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := report.WriteAnnotated(cmd.OutOrStdout(), lines); err != nil {
		return err
	}

	if summary.UnknownLanguage {
		logger.Verbose("No grammar for %q, counted as plain text", language)
	}
	logger.Info("%s (%s): %d lines, %d code, %d comment, %d blank",
		path, summary.Language, summary.Lines, summary.Code, summary.Comment, summary.Blank)
	if summary.Unterminated {
		logger.Info("%s ends inside a comment or string", path)
	}
	return nil
}
