// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers defaults, an optional YAML file and ARITH_ env vars.
//   - Errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address. The default binds every interface.
	Addr string `koanf:"addr"`

	// EnvFile is the dotenv settings file read at startup. A missing file is fine.
	EnvFile string `koanf:"env_file"`

	// DiagnosticKey names the settings key echoed by handlers at debug level.
	DiagnosticKey string `koanf:"diagnostic_key"`

	// Title and Version describe the API in the generated OpenAPI document.
	Title   string `koanf:"title"`
	Version string `koanf:"version"`

	// HTTP server timeouts in milliseconds.
	ReadTimeoutMS     int `koanf:"read_timeout_ms"`
	WriteTimeoutMS    int `koanf:"write_timeout_ms"`
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsEnabled mounts /metrics and turns on recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// DocsEnabled mounts /openapi.yaml and /docs.
	DocsEnabled bool `koanf:"docs_enabled"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              "0.0.0.0:8000",
		EnvFile:           ".env",
		DiagnosticKey:     "TEST_KEY",
		Title:             "Parent Module API",
		Version:           "1.0.0",
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 30_000,
		MetricsEnabled:    true,
		DocsEnabled:       true,
	}
}
