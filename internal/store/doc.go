// Package store implements catalog.Persister for data files.
//
// FileStore serializes collections through a codec (JSON, XML, or YAML) and
// replaces the target with an atomic rename. SQLiteStore keeps collections in
// a SQLite database, one row per record, keyed by catalog kind so a single
// database can hold both recipes and staff.
//
// Both stores report a missing file as fs.ErrNotExist so the catalog can
// treat it as an empty source. Use Open to pick the store for a format name.
package store
