// Package config loads, normalizes, and validates renderest configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The calibration factor lives here: it is
// the one field the tool itself writes back, after completed animation
// renders, guarded by a file lock so concurrent invocations do not clobber
// each other.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clamped numeric values.
package config
