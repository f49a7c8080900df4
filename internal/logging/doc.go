// Package logging builds the slog loggers used across submatch.
//
// It provides console and JSON handlers, component-scoped child loggers, and
// typed attribute helpers so call sites stay terse. Field keys that carry
// operational meaning (component, event_type, error_hint, impact) are defined
// here so log consumers can rely on stable names.
package logging
