package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fruitful-search/fruitful/internal/ui"
)

func newTuiCmd() *cobra.Command {
	var limit int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive full-screen search",
		Long: `Full-screen terminal UI: type to search, arrow keys to select a
result, 'o' to open the selected product's page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsTTY(os.Stdout) {
				return fmt.Errorf("tui requires a terminal; use 'fruitful search' instead")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := openEngine(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			return ui.Run(engine, effectiveLimit(limit, cfg), noColor || ui.DetectNoColor())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")

	return cmd
}
