package store

import (
	"fmt"

	"catalog/internal/catalog"
	"catalog/internal/codec"
)

// Open returns the persister for format bound to schema.
func Open(format string, schema catalog.Schema) (catalog.Persister, error) {
	format = codec.NormalizeFormat(format)
	if format == codec.FormatSQLite {
		return NewSQLiteStore(schema), nil
	}
	c, err := codec.ForFormat(format, schema)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return NewFileStore(c), nil
}

// OpenForPath picks the format from path's extension, falling back to
// fallback when the extension is not recognized.
func OpenForPath(path, fallback string, schema catalog.Schema) (catalog.Persister, error) {
	format := codec.FormatFromPath(path)
	if format == "" {
		format = fallback
	}
	return Open(format, schema)
}
