package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/config"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Write the catalog to a file",
		Long: `Save loads the configured data file and writes every record to PATH,
replacing it. The target format follows PATH's extension, so save doubles as a
converter (for example staff.xml to staff.json). Without PATH the data file is
rewritten in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, cfg, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}

			path := cfg.Catalog.File
			if len(args) == 1 {
				if path, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			target, _, err := ctx.openCatalogAt(cmd, path)
			if err != nil {
				return err
			}
			target.Replace(source.Items())
			if err := target.Save(cmd.Context(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d records to %s\n", target.Len(), path)
			return nil
		},
	}
	return cmd
}
