package config

import (
	"fmt"
	"strings"

	"catalog/internal/catalog"
	"catalog/internal/codec"
)

func (c *Config) normalize() error {
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeCatalog() error {
	kind := strings.ToLower(strings.TrimSpace(c.Catalog.Kind))
	if kind == "" {
		kind = defaultKind
	}
	schema, err := catalog.SchemaFor(kind)
	if err != nil {
		return fmt.Errorf("catalog.kind: %w", err)
	}
	c.Catalog.Kind = schema.Kind

	file := strings.TrimSpace(c.Catalog.File)
	if file == "" {
		file = schema.DefaultFile
	}
	if c.Catalog.File, err = expandPath(file); err != nil {
		return fmt.Errorf("catalog.file: %w", err)
	}

	format := codec.NormalizeFormat(c.Catalog.Format)
	if format == "" {
		format = codec.FormatFromPath(c.Catalog.File)
	}
	if format == "" {
		format = codec.FormatFromPath(schema.DefaultFile)
	}
	c.Catalog.Format = format

	c.Catalog.SortKey = strings.ToLower(strings.TrimSpace(c.Catalog.SortKey))
	if c.Catalog.SortKey == "" {
		c.Catalog.SortKey = defaultSortKey
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
