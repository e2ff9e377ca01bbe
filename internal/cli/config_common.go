package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sloc/internal/config"
	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/internal/linescan"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// Environment variables consulted between flags and the project config.
const (
	envWorkers = "SLOC_WORKERS"
	envFormat  = "SLOC_FORMAT"
)

// loadProjectConfig loads .env into the process environment and then the
// project config. An explicit path must exist; otherwise .sloc.yaml is looked
// up next to target (in it when target is a directory) and may be absent,
// in which case an empty config is returned.
func loadProjectConfig(target, explicit string, logger sloc.Logger) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s does not exist: %w", explicit, sloc.ErrInvalidConfig)
		}
		if err != nil {
			return nil, err
		}
		logger.Verbose("Using config %s", explicit)
		return cfg, nil
	}

	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}

	cfg, err := config.Load(dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Verbose("Using config %s", filepath.Join(dir, config.ConfigFileName))
	return cfg, nil
}

// engineSettings are the classifier settings shared by count and annotate.
type engineSettings struct {
	table    *grammar.Table
	policy   linescan.Policy
	encoding string
}

// resolveEngineSettings applies flag > config > default precedence for the
// mixed-line policy and the encoding, and extends the built-in grammar table
// with the languages the config declares.
func resolveEngineSettings(cmd *cobra.Command, cfg *config.ProjectConfig, policyFlag, encodingFlag string) (engineSettings, error) {
	table, err := cfg.Table(grammar.Default())
	if err != nil {
		return engineSettings{}, err
	}

	policyName := cfg.MixedPolicy
	if cmd.Flags().Changed("mixed-policy") {
		policyName = policyFlag
	}
	policy, err := linescan.ParsePolicy(policyName)
	if err != nil {
		return engineSettings{}, err
	}

	encoding := cfg.Encoding
	if cmd.Flags().Changed("encoding") {
		encoding = encodingFlag
	}

	return engineSettings{table: table, policy: policy, encoding: encoding}, nil
}

// resolveWorkers applies flag > $SLOC_WORKERS > config > default (0, meaning
// one worker per CPU).
func resolveWorkers(cmd *cobra.Command, flagValue int, cfg *config.ProjectConfig) (int, error) {
	if cmd.Flags().Changed("workers") {
		if flagValue < 0 {
			return 0, fmt.Errorf("--workers must not be negative, got %d: %w", flagValue, sloc.ErrInvalidConfig)
		}
		return flagValue, nil
	}
	if raw, ok := os.LookupEnv(envWorkers); ok && strings.TrimSpace(raw) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s must be a non-negative integer, got %q: %w", envWorkers, raw, sloc.ErrInvalidConfig)
		}
		return n, nil
	}
	return cfg.Workers, nil
}

// resolveFormatName applies flag > $SLOC_FORMAT > config > default.
func resolveFormatName(cmd *cobra.Command, flagValue string, cfg *config.ProjectConfig) string {
	if cmd.Flags().Changed("format") {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv(envFormat)); v != "" {
		return v
	}
	return cfg.Format
}
