package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/output"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string // "text", "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the product index",
		Long: `Run one ranked keyword search against the lexical index.

All query terms must match; when the raw query collides with the
expression syntax it is retried with any-term matching.

Examples:
  fruitful search "usb cable"
  fruitful search thinkpad --limit 5
  fruitful search "hdmi adapter" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	limit := effectiveLimit(opts.limit, cfg)
	slog.Debug("search", "query", query, "limit", limit)

	results, err := engine.Search(cmd.Context(), query, limit)
	if err != nil {
		return fmt.Errorf("%s", ferrors.UserMessage(err))
	}

	out := output.New(cmd.OutOrStdout())
	switch opts.format {
	case "json":
		return out.ResultsJSON(results)
	default:
		if len(results) == 0 {
			out.Status("", fmt.Sprintf("No results for %q", query))
			return nil
		}
		out.Statusf("🔍", "Found %d results for %q:", len(results), query)
		out.Newline()
		out.Results(results)
		return nil
	}
}
