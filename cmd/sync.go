package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anahartlab/originals/internal/config"
	"github.com/anahartlab/originals/internal/enrich"
	"github.com/anahartlab/originals/internal/gallery"
	"github.com/anahartlab/originals/internal/render"
	"github.com/anahartlab/originals/internal/source"
	"github.com/anahartlab/originals/internal/vision"
)

// loadConfig resolves the --config flag into a Config. A missing file is
// only fatal when the flag was set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path, cmd.Flags().Changed("config"))
}

// newSource picks the record store: the spreadsheet when configured,
// otherwise the local CSV file.
func newSource(cfg config.Config) (source.Source, error) {
	if cfg.SpreadsheetID != "" {
		if cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("spreadsheet_id is set but no credentials file is configured")
		}
		return source.NewSheetsSource(cfg.SpreadsheetID, cfg.SheetName, cfg.CredentialsFile), nil
	}
	if cfg.CSVPath == "" {
		return nil, fmt.Errorf("neither spreadsheet_id nor csv_path is configured")
	}
	return source.NewCSVSource(cfg.CSVPath), nil
}

func newEngine(cfg config.Config) (*enrich.Engine, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Vision.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
	}
	client := vision.NewClient(vision.Config{
		URL:          cfg.Vision.URL,
		APIKey:       cfg.Vision.APIKey,
		Model:        cfg.Vision.Model,
		Timeout:      cfg.Vision.Timeout(),
		MaxAttempts:  cfg.Vision.MaxAttempts,
		InitialDelay: cfg.Vision.InitialDelay(),
	})
	selector := gallery.NewSelector(cfg.ImagesDir, nil)
	return enrich.NewEngine(src, selector, client, cfg.Workers), nil
}

func newPublisher(cfg config.Config) (*render.Publisher, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	return render.NewPublisher(src, gallery.NewSelector(cfg.ImagesDir, nil), cfg.DocumentPath), nil
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Enrich missing product text, then rebuild the catalog page",
		Long: `Run the enrichment pass and the render pass back to back.

Enrichment is persisted to the record source before rendering starts, so
freshly generated titles and descriptions appear on the rebuilt page.`,
		Example: `  # Local CSV and images next to the page
  originals sync

  # Against a Google Sheet
  GOOGLE_SHEET_ID=1FO... GOOGLE_APPLICATION_CREDENTIALS=sa.json originals sync`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			if err := engine.Run(cmd.Context()); err != nil {
				return err
			}
			publisher, err := newPublisher(cfg)
			if err != nil {
				return err
			}
			return publisher.Run(cmd.Context())
		},
	}
}
