package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fruitful-search/fruitful/internal/builder"
	"github.com/fruitful-search/fruitful/internal/config"
	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/output"
	"github.com/fruitful-search/fruitful/internal/store"
	"github.com/fruitful-search/fruitful/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever the catalog file changes",
		Long: `Watch the catalog file and rebuild the index after each change.
Rapid write bursts are coalesced into a single rebuild. Runs until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runWatch(cmd, cfg)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, cfg *config.Config) error {
	out := output.New(cmd.OutOrStdout())

	if err := os.MkdirAll(filepath.Dir(cfg.Index.Path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

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

	rebuild := func(ctx context.Context) {
		stats, err := builder.BuildFromFile(ctx, s, cfg.Catalog.Path)
		if err != nil {
			out.Errorf("rebuild failed: %s", ferrors.UserMessage(err))
			return
		}
		out.Successf("Indexed %d products (%d without metadata)", stats.Indexed, stats.Skipped)
	}

	// Bring the index current before waiting for changes.
	rebuild(cmd.Context())

	w := watcher.New(cfg.Catalog.Path, cfg.DebounceDuration())
	out.Statusf("👀", "Watching %s (ctrl-c to stop)", cfg.Catalog.Path)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return w.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case _, ok := <-w.Changes():
				if !ok {
					return nil
				}
				slog.Info("catalog changed, rebuilding")
				rebuild(ctx)
			}
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
