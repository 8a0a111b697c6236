package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fruitful-search/fruitful/internal/builder"
	"github.com/fruitful-search/fruitful/internal/config"
	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/output"
	"github.com/fruitful-search/fruitful/internal/store"
)

func newIndexCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the search index from the catalog file",
		Long: `Rebuild the lexical index from the product catalog.

The rebuild is atomic: searches against the same index file see the
previous contents until the new index is committed.

Examples:
  fruitful index
  fruitful index --catalog data/raw/catalog.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Catalog.Path = catalogPath
			}
			return runIndex(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog JSON file (default from config)")

	return cmd
}

func runIndex(cmd *cobra.Command, cfg *config.Config) error {
	out := output.New(cmd.OutOrStdout())

	if err := os.MkdirAll(filepath.Dir(cfg.Index.Path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// One rebuild at a time per index file.
	lock := builder.NewFileLock(cfg.Index.Path)
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another rebuild is already running (lock: %s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	s, err := store.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("%s", ferrors.UserMessage(err))
	}
	defer func() { _ = s.Close() }()

	out.Statusf("🔨", "Indexing %s", cfg.Catalog.Path)
	stats, err := builder.BuildFromFile(cmd.Context(), s, cfg.Catalog.Path)
	if err != nil {
		slog.Error("index rebuild failed", "error", err)
		return fmt.Errorf("%s", ferrors.UserMessage(err))
	}

	out.Successf("Indexed %d products into %s", stats.Indexed, cfg.Index.Path)
	if stats.Skipped > 0 {
		out.Warningf("%d records had no valid product id (searchable, but without metadata)", stats.Skipped)
	}
	return nil
}
