package config

const (
	defaultKind      = "recipes"
	defaultSortKey   = "value"
	defaultLogFormat = "console"
	defaultLogLevel  = "warn"
)

// Default returns a Config populated with repository defaults. File and
// Format are left empty; normalize derives them from the kind.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Kind:    defaultKind,
			SortKey: defaultSortKey,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
