package main

import (
	"github.com/spf13/cobra"

	"catalog/internal/catalog"
	"catalog/internal/codec"
)

// writeRecordsJSON prints records in the same layout the JSON data files use.
func writeRecordsJSON(cmd *cobra.Command, schema catalog.Schema, records []catalog.Record) error {
	enc, err := codec.ForFormat(codec.FormatJSON, schema)
	if err != nil {
		return err
	}
	return enc.Encode(cmd.OutOrStdout(), records)
}
