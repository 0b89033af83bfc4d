// Package config provides process-level configuration for Mixter applications:
// environment variables, the slog logger, and the OpenTelemetry providers.
package config
