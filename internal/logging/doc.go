// Package logging assembles the slog loggers used by the catalog tools.
//
// It owns the console and JSON handlers, level parsing, and the session
// identifier stamped on every line of a CLI invocation. Library packages
// accept a *slog.Logger and fall back to NewNop, so they stay silent unless
// the command layer wires a real logger in.
package logging
