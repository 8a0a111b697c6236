// Package cmd provides the CLI commands for fruitful.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fruitful-search/fruitful/internal/config"
	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/logging"
	"github.com/fruitful-search/fruitful/internal/search"
	"github.com/fruitful-search/fruitful/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the fruitful CLI.
func NewRootCmd() *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "fruitful [query]",
		Short: "Lexical search over a product catalog",
		Long: `Fruitful indexes a product catalog into a local SQLite FTS5 store
and serves ranked keyword search.

With arguments it runs a one-shot search; without arguments it starts
an interactive prompt. Run 'fruitful index' first to build the index
from the catalog file.`,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runSearch(cmd, strings.Join(args, " "), searchOptions{
					limit:  limit,
					format: format,
				})
			}
			return runREPL(cmd, limit)
		},
	}

	cmd.SetVersionTemplate("fruitful version {{.Version}}\n")

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.fruitful/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newTuiCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug file logging when --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads layered configuration rooted at the working directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openEngine opens the search engine for the configured index path.
func openEngine(cfg *config.Config) (*search.Engine, error) {
	engine, err := search.Open(cfg.Index.Path)
	if err != nil {
		return nil, fmt.Errorf("%s", ferrors.UserMessage(err))
	}
	return engine, nil
}

// effectiveLimit resolves the result cap: flag value when set,
// configured default otherwise.
func effectiveLimit(flagValue int, cfg *config.Config) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Search.DefaultLimit
}
