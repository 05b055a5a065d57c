package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/config"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [path]",
		Short: "Load a data file and print its records",
		Long: `Load reads PATH (default: the configured data file) and prints what it
contains. The format follows the file extension. A missing file loads as an
empty catalog. XML entries missing a field are skipped and counted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Catalog.File
			if len(args) == 1 {
				if path, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			cat, _, err := ctx.openCatalogAt(cmd, path)
			if err != nil {
				return err
			}
			result, err := cat.Load(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Missing {
				fmt.Fprintf(out, "No data file at %s; catalog is empty\n", path)
			} else {
				fmt.Fprintf(out, "Loaded %d records from %s\n", result.Loaded, path)
			}
			if result.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d incomplete entries\n", result.Skipped)
			}
			printTable(out, cat.Render())
			return nil
		},
	}
	return cmd
}
