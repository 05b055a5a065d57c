package main

import (
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"show"},
		Short:   "Print the catalog as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeRecordsJSON(cmd, cat.Schema(), cat.Items())
			}
			printTable(cmd.OutOrStdout(), cat.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
