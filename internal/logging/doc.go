// Package logging assembles structured slog loggers and formatting helpers used
// across partsite commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys (component, natural-key
// segments, part UUID, descriptor path) so importer and web log lines share one
// shape. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
package logging
