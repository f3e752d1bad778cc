package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the originals CLI.
func NewRootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "originals",
		Short: "Product catalog generator with AI-filled titles and descriptions",
		Long: `Originals keeps a static product catalog page in sync with a product
sheet and per-product image folders.

The enrich pass fills missing titles and descriptions by sending each
product's main image to a vision-description service. The render pass
rebuilds the catalog HTML: one carousel-plus-text section per product,
inserted before the page footer, replacing any previously generated
sections.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "originals.yaml", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newSyncCmd())

	return cmd
}
