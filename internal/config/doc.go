// Package config loads, normalizes, and validates catalog configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit path, the per-user
// location, or a catalog.toml in the working directory. The Config type holds
// the catalog kind, data file, storage format, sort order, and logging
// settings the CLI needs.
//
// Always obtain settings through this package so commands receive resolved
// paths and a known format instead of re-deriving them.
package config
