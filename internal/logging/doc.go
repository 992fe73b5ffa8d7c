// Package logging assembles the structured slog loggers used across
// renderest.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attribute helpers so estimation and tracking code tags log lines
// with the same field names everywhere. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
