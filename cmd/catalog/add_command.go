package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/catalog"
	"catalog/internal/logging"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var name, category string
	var value int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record and save the catalog",
		Example: `  catalog add --name "Паста" --cuisine "Итальянская" --time 20
  catalog --kind staff add --name "Иванов И.И." --post "Инженер" --year 2015`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := catalog.NewRecord(name, category, value)
			if err != nil {
				return usageError(cmd, err)
			}

			cat, cfg, err := ctx.loadCatalog(cmd)
			if err != nil {
				return err
			}
			cat.Add(record)
			if err := cat.Save(cmd.Context(), cfg.Catalog.File); err != nil {
				return err
			}

			if logger, err := ctx.loggerFor(cmd); err == nil {
				logger.Info("record added",
					logging.String("name", record.Name()),
					logging.String("file", cfg.Catalog.File),
					logging.Int("count", cat.Len()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Record added.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(aliasNormalizer(map[string]string{
		"cuisine": "category",
		"post":    "category",
		"time":    "value",
		"year":    "value",
	}))
	flags.StringVar(&name, "name", "", "Record name")
	flags.StringVar(&category, "category", "", "Category (alias --cuisine or --post)")
	flags.IntVar(&value, "value", 0, "Numeric attribute (alias --time or --year)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
