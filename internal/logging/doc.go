// Package logging assembles structured slog loggers and formatting helpers used
// across the transients loader and CLI.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes component and transient helpers so loader code tags
// its log lines consistently. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
