package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sloc/internal/classifier"
	"github.com/vvka-141/sloc/internal/config"
	"github.com/vvka-141/sloc/internal/files/filesystem"
	"github.com/vvka-141/sloc/internal/files/scanner"
	"github.com/vvka-141/sloc/internal/logging"
	"github.com/vvka-141/sloc/internal/report"
	"github.com/vvka-141/sloc/internal/services"
	"github.com/vvka-141/sloc/pkg/sloc"
)

type countFlagValues struct {
	includeExtensions []string
	ignoreExtensions  []string
	ignorePaths       []string
	ignoreDefault     bool
	workers           int
	format            string
	byFile            bool
	mixedPolicy       string
	encoding          string
	configPath        string
}

// countSettings is the fully resolved configuration of one count run.
type countSettings struct {
	engine  engineSettings
	scan    scanner.Options
	workers int
	format  report.Format
	byFile  bool
}

func newCountCmd() *cobra.Command {
	var flags countFlagValues

	cmd := &cobra.Command{
		Use:   "count <path>",
		Short: "Count blank, comment and code lines under a path",
		Long: `Count walks a file or directory, classifies every line of each file whose
extension maps to a known language, and prints totals per language.

Settings are taken from flags, then environment variables ($SLOC_WORKERS,
$SLOC_FORMAT, also read from a .env file), then .sloc.yaml in the counted
directory, then defaults.

Files that are not text (binary content or undecodable bytes) are skipped
and listed after the report.`,
		Example: `  # Count the current directory
  sloc count .

  # Count only Go and SQL, as JSON
  sloc count ./src -e go,sql -d --format json

  # Also count .tpl files, skip generated code
  sloc count . -e tpl -x 'vendor/**' -x '**/*_gen.go'

  # Per-file breakdown
  sloc count ./internal --by-file`,
		Args: RequirePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, &flags)
		},
	}

	registerCountFlags(cmd, &flags)

	return cmd
}

func registerCountFlags(cmd *cobra.Command, flags *countFlagValues) {
	f := cmd.Flags()
	f.StringSliceVarP(&flags.includeExtensions, "include-extensions", "e", nil,
		"Extensions to count in addition to the built-in ones (comma-separated, dot optional)")
	f.StringSliceVarP(&flags.ignoreExtensions, "ignore-extensions", "i", nil,
		"Extensions to leave out (comma-separated, dot optional)")
	f.StringArrayVarP(&flags.ignorePaths, "ignore-paths", "x", nil,
		"Glob of relative paths to skip, ** matches any depth (repeatable)")
	f.BoolVarP(&flags.ignoreDefault, "ignore-default", "d", false,
		"Count only the extensions given with --include-extensions")
	f.IntVarP(&flags.workers, "workers", "w", 0,
		"Files classified in parallel\n"+
			"Precedence: --workers > $SLOC_WORKERS > config > number of CPUs")
	f.StringVar(&flags.format, "format", "",
		"Output format: text|json\n"+
			"Precedence: --format > $SLOC_FORMAT > config > text")
	f.BoolVar(&flags.byFile, "by-file", false, "Include one row per counted file")
	f.StringVar(&flags.mixedPolicy, "mixed-policy", "",
		"How a line that closes a block comment and then has code counts: code|comment (default code)")
	f.StringVar(&flags.encoding, "encoding", "",
		"Encoding of files without a byte order mark, by IANA name (default UTF-8)")
	f.StringVar(&flags.configPath, "config", "",
		"Config file to use instead of .sloc.yaml in the counted directory")

	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("mixed-policy",
		cobra.FixedCompletions([]string{"code", "comment"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("config",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		})
}

// buildCountSettings merges flags, environment and project config.
func buildCountSettings(cmd *cobra.Command, path string, flags *countFlagValues, logger sloc.Logger) (countSettings, error) {
	cfg, err := loadProjectConfig(path, flags.configPath, logger)
	if err != nil {
		return countSettings{}, err
	}
	return mergeCountSettings(cmd, flags, cfg)
}

func mergeCountSettings(cmd *cobra.Command, flags *countFlagValues, cfg *config.ProjectConfig) (countSettings, error) {
	engine, err := resolveEngineSettings(cmd, cfg, flags.mixedPolicy, flags.encoding)
	if err != nil {
		return countSettings{}, err
	}

	workers, err := resolveWorkers(cmd, flags.workers, cfg)
	if err != nil {
		return countSettings{}, err
	}

	format, err := report.ParseFormat(resolveFormatName(cmd, flags.format, cfg))
	if err != nil {
		return countSettings{}, err
	}

	// Flags replace the configured include list and switch; ignore lists
	// from both sources are combined.
	scan := scanner.Options{
		IncludeExtensions: cfg.Extensions.Include,
		IgnoreExtensions:  append(append([]string{}, cfg.Extensions.Ignore...), flags.ignoreExtensions...),
		IgnoreDefault:     cfg.Extensions.IgnoreDefault,
		IgnorePaths:       append(append([]string{}, cfg.IgnorePaths...), flags.ignorePaths...),
	}
	if cmd.Flags().Changed("include-extensions") {
		scan.IncludeExtensions = flags.includeExtensions
	}
	if cmd.Flags().Changed("ignore-default") {
		scan.IgnoreDefault = flags.ignoreDefault
	}

	return countSettings{
		engine:  engine,
		scan:    scan,
		workers: workers,
		format:  format,
		byFile:  flags.byFile,
	}, nil
}

func runCount(cmd *cobra.Command, args []string, flags *countFlagValues) error {
	path := args[0]
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	settings, err := buildCountSettings(cmd, path, flags, logger)
	if err != nil {
		return err
	}

	fileScanner, err := scanner.NewScanner(settings.engine.table, settings.scan)
	if err != nil {
		return err
	}

	base, err := classifier.New(settings.engine.table,
		classifier.WithPolicy(settings.engine.policy),
		classifier.WithEncoding(settings.engine.encoding))
	if err != nil {
		return err
	}
	cached, err := classifier.NewCached(base, sloc.DefaultCacheSize)
	if err != nil {
		return err
	}

	counter := services.NewCounter(fileScanner, filesystem.NewOSFileSystem(), cached, logger, settings.workers)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Info("Interrupt received, stopping after files in progress...")
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := counter.CountPath(ctx, path)
	if err != nil {
		return err
	}

	hits, misses := cached.Stats()
	logger.Verbose("Classification cache: %d hits, %d misses", hits, misses)
	if len(result.Files) == 0 && len(result.Skipped) == 0 {
		logger.Info("No files matched under %s (see --include-extensions)", path)
	}

	return report.Write(cmd.OutOrStdout(), result, settings.format, report.Options{ByFile: settings.byFile})
}
