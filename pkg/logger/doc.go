// Package logger builds slog loggers with environment presets and
// context-driven attribute injection, so request-scoped values like the
// resolved tenant id appear on every log line without manual plumbing.
package logger
