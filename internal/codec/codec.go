// Package codec serializes record collections to JSON, XML, and YAML.
//
// Every codec is bound to a catalog.Schema, which supplies the element and
// key names, so one implementation serves both the recipe and staff kinds.
// Decoding failures wrap catalog.ErrMalformed; the XML codec additionally
// drops entries that lack a required sub-element and reports them in
// Snapshot.Skipped.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catalog/internal/catalog"
)

// Supported format names.
const (
	FormatJSON   = "json"
	FormatXML    = "xml"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// ErrUnknownFormat is returned for format names no codec handles.
var ErrUnknownFormat = errors.New("unknown data format")

// Codec converts between a byte stream and records.
type Codec interface {
	Format() string
	Encode(w io.Writer, records []catalog.Record) error
	Decode(r io.Reader) (catalog.Snapshot, error)
}

// ForFormat returns the codec for a stream format bound to schema.
func ForFormat(format string, schema catalog.Schema) (Codec, error) {
	switch NormalizeFormat(format) {
	case FormatJSON:
		return jsonCodec{schema: schema}, nil
	case FormatXML:
		return xmlCodec{schema: schema}, nil
	case FormatYAML:
		return yamlCodec{schema: schema}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// FormatFromPath infers a format name from a file extension. It returns an
// empty string when the extension is not recognized.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xml":
		return FormatXML
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return ""
	}
}

// Formats lists every format name the repository understands.
func Formats() []string {
	return []string{FormatJSON, FormatXML, FormatYAML, FormatSQLite}
}

// NormalizeFormat canonicalizes aliases such as "yml" and "db".
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "yml":
		return FormatYAML
	case "db", "sqlite3":
		return FormatSQLite
	}
	return format
}

func malformed(format string, err error) error {
	return fmt.Errorf("%w: %s: %w", catalog.ErrMalformed, format, err)
}

func malformedf(format, msg string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", catalog.ErrMalformed, format, fmt.Sprintf(msg, args...))
}
