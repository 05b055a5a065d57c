// Package catalog holds the record catalog engine shared by the recipe and
// staff command-line front ends.
//
// A Record is an immutable three-field value (name, category, numeric value).
// A Catalog keeps Records sorted after every insertion, filters them by the
// schema's select policy, and delegates persistence to a Persister so the
// same engine can read and write JSON, XML, YAML, or SQLite files.
//
// Schemas describe the per-kind differences: serialized field keys, column
// labels, the select policy, and the default data file.
package catalog
