package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	file    string
}

// NewConfig produces a config whose data file lives in a per-test temp
// directory. Options run before the data file is derived from the kind.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	file := builder.file
	if file == "" {
		schema := builder.cfg.Schema()
		file = schema.DefaultFile
		if builder.cfg.Catalog.Format != "" {
			file = strings.TrimSuffix(file, filepath.Ext(file)) + "." + builder.cfg.Catalog.Format
		}
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(builder.baseDir, file)
	}
	if err := builder.cfg.ApplyOverrides(config.Overrides{
		Kind:   builder.cfg.Catalog.Kind,
		File:   file,
		Format: builder.cfg.Catalog.Format,
	}); err != nil {
		t.Fatalf("test config: %v", err)
	}
	return builder.cfg
}

// WithKind selects the catalog kind.
func WithKind(kind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Kind = kind
	}
}

// WithFormat selects the storage format; the default data file takes the
// matching extension.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Format = format
	}
}

// WithFile places the data file at name inside the test directory, or at
// name itself when it is absolute.
func WithFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.file = name
	}
}

// WithSortKey overrides the record ordering.
func WithSortKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.SortKey = key
	}
}

// WriteConfigFile writes cfg as TOML next to its data file and returns the
// path, for tests that pass --config to the CLI.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	content := fmt.Sprintf(
		"[catalog]\nkind = %q\nfile = %q\nformat = %q\nsort_key = %q\n\n[logging]\nformat = %q\nlevel = %q\n",
		cfg.Catalog.Kind,
		cfg.Catalog.File,
		cfg.Catalog.Format,
		cfg.Catalog.SortKey,
		cfg.Logging.Format,
		cfg.Logging.Level,
	)
	path := filepath.Join(filepath.Dir(cfg.Catalog.File), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
