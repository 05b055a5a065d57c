package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"catalog/internal/catalog"
	"catalog/internal/codec"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog selects the catalog kind and where its data lives.
type Catalog struct {
	Kind    string `toml:"kind"`
	File    string `toml:"file"`
	Format  string `toml:"format"`
	SortKey string `toml:"sort_key"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the catalog CLI.
type Config struct {
	Catalog Catalog `toml:"catalog"`
	Logging Logging `toml:"logging"`

	// raw keeps the catalog section as written so overrides can re-derive
	// file and format defaults for a different kind.
	raw Catalog
}

// Overrides carries command-line values that take precedence over the file.
// Empty fields leave the configured value in place.
type Overrides struct {
	Kind   string
	File   string
	Format string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/catalog/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.raw = cfg.Catalog
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ApplyOverrides merges command-line values and re-derives defaults that
// depend on them. Switching to another kind drops the configured file and
// format, which belong to the configured kind; a new file without a format
// takes the format from its extension.
func (c *Config) ApplyOverrides(o Overrides) error {
	if kind := strings.TrimSpace(o.Kind); kind != "" {
		if c.switchesKind(kind) {
			c.raw.File = ""
			c.raw.Format = ""
		}
		c.raw.Kind = kind
	}
	if file := strings.TrimSpace(o.File); file != "" {
		c.raw.File = file
		if codec.FormatFromPath(file) != "" {
			c.raw.Format = ""
		}
	}
	if format := strings.TrimSpace(o.Format); format != "" {
		c.raw.Format = format
	}
	c.raw.SortKey = c.Catalog.SortKey
	c.Catalog = c.raw
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) switchesKind(kind string) bool {
	next, err := catalog.SchemaFor(kind)
	if err != nil {
		return false
	}
	current, err := catalog.SchemaFor(c.Catalog.Kind)
	return err != nil || current.Kind != next.Kind
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("inspect config %s: %w", expanded, err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("catalog.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Schema returns the schema for the configured kind.
func (c *Config) Schema() catalog.Schema {
	schema, err := catalog.SchemaFor(c.Catalog.Kind)
	if err != nil {
		return catalog.Recipes
	}
	return schema
}

// SortKey returns the configured ordering.
func (c *Config) SortKey() catalog.SortKey {
	key, _ := catalog.ParseSortKey(c.Catalog.SortKey)
	return key
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
