package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the process settings read from the environment.
type Config struct {
	LogLevel            string        `env:"MIXTER_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"MIXTER_LOG_FORMAT" envDefault:"text"`
	DispatchPolicy      string        `env:"MIXTER_DISPATCH_POLICY" envDefault:"fail_fast"`
	OTelEnabled         bool          `env:"MIXTER_OTEL_ENABLED" envDefault:"false"`
	OTelTraceEndpoint   string        `env:"MIXTER_OTEL_TRACE_ENDPOINT" envDefault:"localhost:4317"`
	OTelMetricEndpoint  string        `env:"MIXTER_OTEL_METRIC_ENDPOINT" envDefault:"localhost:4317"`
	OTelMetricInterval  time.Duration `env:"MIXTER_OTEL_METRIC_INTERVAL" envDefault:"5s"`
	OTelShutdownTimeout time.Duration `env:"MIXTER_OTEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ServiceName         string        `env:"MIXTER_SERVICE_NAME" envDefault:"mixter"`
	ServiceVersion      string        `env:"MIXTER_SERVICE_VERSION" envDefault:"dev"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFrom reads Config from the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
