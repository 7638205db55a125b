// Package logging assembles the structured slog loggers used across Cadence.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small attribute helpers so command code logs data
// with a consistent shape. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits log lines with the same format and routing.
package logging
