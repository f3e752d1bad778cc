package cmd

import (
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Rebuild the catalog page from records and image folders",
		Long: `Rebuild the product sections of the catalog HTML page.

All previously generated sections and navigation are removed, then one
section per product is inserted before the page footer in sheet order.
Folders with more than five images contribute a random five to the
carousel. Everything outside the generated sections is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
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
