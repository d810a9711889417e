// Package log provides structured, leveled logging for minthook components.
//
// The package is a thin Field-based facade over log/slog. Components receive
// a Logger tagged with their component name and emit fields rather than
// formatted strings:
//
//	logger := log.NewLogger(log.WithLevel(log.InfoLevel))
//	logger = logger.With(log.Component("worker"))
//	logger.Info("task processed", log.Str("event_type", et), log.Int("tokens", n))
//
// Output format is text (default) or JSON, selected via ApplyConfig or
// WithFormat. RedirectStdLog routes standard-library log output (emitted by
// Pebble, among others) through a Logger.
package log
