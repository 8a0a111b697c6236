package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fruitful-search/fruitful/internal/browser"
	"github.com/fruitful-search/fruitful/internal/output"
)

func newOpenCmd() *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "open <pid>",
		Short: "Open a product's page in the browser",
		Long: `Resolve a product id to its URL and open it in the default
browser. With --no-browser (or FRUITFUL_NO_BROWSER=1) the URL is
printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || pid < 0 {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			return runOpen(cmd, pid, noBrowser)
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Print the URL instead of opening a browser")

	return cmd
}

func runOpen(cmd *cobra.Command, pid int64, noBrowser bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	out := output.New(cmd.OutOrStdout())

	url, ok, err := engine.LookupURL(cmd.Context(), pid)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no url known for product %d", pid)
	}

	if noBrowser || browser.Suppressed() {
		out.Status("", url)
		return nil
	}
	if err := browser.Open(url); err != nil {
		out.Warningf("could not launch browser: %v", err)
		out.Status("", url)
		return nil
	}
	out.Successf("Opened %s", url)
	return nil
}
