package config

import "time"

// Config represents the complete application configuration.
// Precedence, lowest first: built-in defaults, config file, MAXRANGE_*
// environment variables, command-line flags and runtime overrides.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Verify  VerifyConfig  `mapstructure:"verify"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Workers int           `mapstructure:"workers"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logger: "simple" for human-readable console output,
	// "structured" for JSON lines on stderr.
	Profile string `mapstructure:"profile"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// Format is one of plain, table, json, markdown.
	Format string `mapstructure:"format"`
}

// VerifyConfig controls the brute-force cross-check.
type VerifyConfig struct {
	Oracle bool `mapstructure:"oracle"`

	// OracleMaxLength skips the O(n^2) oracle for longer sequences.
	// Zero disables the limit.
	OracleMaxLength int `mapstructure:"oracle_max_length"`
}

// BatchConfig contains batch run settings.
type BatchConfig struct {
	// Timeout bounds a whole batch run. Zero means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled exposes evaluation counters while a command runs.
	Enabled bool `mapstructure:"enabled"`

	// Port is the Prometheus exporter port; 0 picks a free port.
	Port int `mapstructure:"port"`
}
