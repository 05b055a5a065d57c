package config

import (
	"fmt"
	"slices"
	"strings"

	"catalog/internal/catalog"
	"catalog/internal/codec"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if _, err := catalog.SchemaFor(c.Catalog.Kind); err != nil {
		return fmt.Errorf("catalog.kind: %w", err)
	}
	if strings.TrimSpace(c.Catalog.File) == "" {
		return fmt.Errorf("catalog.file must be set")
	}
	if !slices.Contains(codec.Formats(), c.Catalog.Format) {
		return fmt.Errorf("catalog.format: unsupported value %q (expected one of %s)",
			c.Catalog.Format, strings.Join(codec.Formats(), ", "))
	}
	if _, err := catalog.ParseSortKey(c.Catalog.SortKey); err != nil {
		return fmt.Errorf("catalog.sort_key: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
