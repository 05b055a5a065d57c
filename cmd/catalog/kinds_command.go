package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalog/internal/catalog"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "kinds",
		Short:       "List the supported catalog kinds",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]any, 0, len(catalog.Kinds()))
			for _, kind := range catalog.Kinds() {
				schema, err := catalog.SchemaFor(kind)
				if err != nil {
					return err
				}
				keys := schema.Keys()
				rows = append(rows, []any{
					schema.Kind,
					strings.Join(keys[:], ", "),
					selectDescription(schema),
					schema.DefaultFile,
				})
			}
			printTable(cmd.OutOrStdout(), catalog.RenderTable(
				[]catalog.Column{{Header: "Kind"}, {Header: "Fields"}, {Header: "Select"}, {Header: "Default file"}},
				rows, "",
			))
			return nil
		},
	}
}

func selectDescription(schema catalog.Schema) string {
	if schema.Select == catalog.SelectSeniority {
		return fmt.Sprintf("%s at least N years ago", schema.ValueKey)
	}
	return fmt.Sprintf("%s equals (any case)", schema.CategoryKey)
}
