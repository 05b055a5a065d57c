package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/catalog"
)

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var criterion string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print records matching a criterion",
		Long: `Select filters the catalog with the kind's policy:

  recipes  --cuisine NAME   records whose cuisine equals NAME, ignoring case
  staff    --period YEARS   workers hired at least YEARS years ago`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, cfg, err := ctx.openCatalog(cmd)
			if err != nil {
				return err
			}
			if err := cat.CheckCriterion(criterion); err != nil {
				return usageError(cmd, err)
			}
			if _, err := cat.Load(cmd.Context(), cfg.Catalog.File); err != nil {
				return err
			}
			matches, err := cat.Select(criterion)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeRecordsJSON(cmd, cat.Schema(), matches)
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matching records.")
				return nil
			}
			printTable(out, catalog.RenderRecords(cat.Schema(), matches))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(aliasNormalizer(map[string]string{
		"cuisine": "criterion",
		"period":  "criterion",
	}))
	flags.StringVar(&criterion, "criterion", "", "Cuisine for recipes, minimum years of service for staff (alias --cuisine or --period)")
	flags.BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("criterion")
	return cmd
}
