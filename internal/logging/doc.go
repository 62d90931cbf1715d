// Package logging assembles the structured slog loggers used across muxxy.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and standardizes the attribute keys components tag their lines
// with (video, subtitle, event_type). The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
