// Package main hosts the catalog CLI entrypoint and command graph.
//
// One binary manages both catalog kinds: the recipe catalog (name, cuisine,
// cooking time) and the staff roster (name, post, year of hire). The Cobra
// command tree resolves configuration and flag overrides once per
// invocation, opens the configured store, and hands the work to
// internal/catalog. Every mutating command loads the data file, applies the
// change, and saves it back, so each invocation is self-contained.
//
// Tables and status lines go to stdout; logs go to stderr.
package main
