package cmd

import (
	"github.com/spf13/cobra"
)

func newEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing titles and descriptions from product images",
		Long: `Scan the image folders, and for every product whose record is missing a
title or description, send the folder's main image to the description
service. Generated descriptions are shortened to a sentence boundary;
titles are derived from the first words of the description and kept unique
across the whole sheet. All changes are written back in one batch.`,
		Example: `  # Enrich with 8 parallel workers
  ENRICH_WORKERS=8 originals enrich

  # Use a different vision model
  VISION_MODEL=llava-next-34b originals enrich`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			return engine.Run(cmd.Context())
		},
	}
}
