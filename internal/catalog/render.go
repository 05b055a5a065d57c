package catalog

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// EmptyMessage is the caption rendered under an empty table.
const EmptyMessage = "Catalog is empty."

// Minimum column widths for the index, name, category, and value columns.
const (
	indexWidth    = 3
	nameWidth     = 28
	categoryWidth = 18
	valueWidth    = 6
)

// Render draws the catalog as a fixed-width ASCII table.
func (c *Catalog) Render() string {
	return RenderRecords(c.schema, c.items)
}

// RenderRecords draws records with the schema's column labels. The header and
// borders are always present; an empty slice adds the EmptyMessage caption.
func RenderRecords(schema Schema, records []Record) string {
	columns := []Column{
		{Header: "#", AlignRight: true, WidthMin: indexWidth},
		{Header: schema.NameLabel, WidthMin: nameWidth},
		{Header: schema.CategoryLabel, WidthMin: categoryWidth},
		{Header: schema.ValueLabel, AlignRight: true, WidthMin: valueWidth},
	}
	rows := make([][]any, 0, len(records))
	for i, r := range records {
		rows = append(rows, []any{i + 1, r.Name(), r.Category(), r.Value()})
	}
	caption := ""
	if len(records) == 0 {
		caption = EmptyMessage
	}
	return RenderTable(columns, rows, caption)
}

// Column configures one RenderTable column. Headers are always left-aligned.
type Column struct {
	Header     string
	AlignRight bool
	WidthMin   int
}

// RenderTable draws rows in the ASCII style shared by every table the CLI
// prints. Short rows are padded with blank cells; caption, when set, goes
// under the bottom border.
func RenderTable(columns []Column, rows [][]any, caption string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Header
		align := text.AlignLeft
		if col.AlignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, WidthMin: col.WidthMin}
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	tw.SetColumnConfigs(configs)

	if caption != "" {
		tw.SetCaption(caption)
	}
	return tw.Render()
}
