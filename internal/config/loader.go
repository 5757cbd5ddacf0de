// Package config provides centralized configuration management for maxrange.
// Values come from viper (defaults, config file, environment, bound flags) and
// are decoded into a typed Config with mapstructure.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/maxrange/maxrange/internal/observability"
	"github.com/maxrange/maxrange/internal/output"
)

const (
	// AppName names the config directory and metric namespace.
	AppName = "maxrange"

	// EnvPrefix is the prefix for environment overrides, e.g. MAXRANGE_WORKERS.
	EnvPrefix = "MAXRANGE"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default configuration values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "simple")

	v.SetDefault("output.format", "table")

	v.SetDefault("verify.oracle", true)
	v.SetDefault("verify.oracle_max_length", 2000)

	v.SetDefault("batch.timeout", "0s")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("workers", 4)
}

// NewViper returns a viper instance with defaults and environment binding
// configured. Keys map to variables as verify.oracle_max_length ->
// MAXRANGE_VERIFY_ORACLE_MAX_LENGTH.
func NewViper() *viper.Viper {
	v := viper.New()
	ConfigureEnv(v)
	SetDefaults(v)
	return v
}

// ConfigureEnv enables MAXRANGE_* environment overrides on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes the settings held by v into a Config, applies runtime
// overrides on top and validates the result.
//
// This function is safe to call multiple times (e.g., for config reload)
func Load(v *viper.Viper, runtimeOverrides ...map[string]any) (*Config, error) {
	if v == nil {
		return nil, errors.New("viper instance is required")
	}

	merged := v.AllSettings()
	for _, override := range runtimeOverrides {
		merged = mergeSettings(merged, override)
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(merged); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Profile = strings.ToLower(strings.TrimSpace(cfg.Logging.Profile))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate checks value ranges that mapstructure cannot express.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Verify.OracleMaxLength < 0 {
		return fmt.Errorf("verify.oracle_max_length must not be negative, got %d", c.Verify.OracleMaxLength)
	}
	if c.Batch.Timeout < 0 {
		return fmt.Errorf("batch.timeout must not be negative, got %s", c.Batch.Timeout)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port out of range: %d", c.Metrics.Port)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if !observability.ValidProfile(c.Logging.Profile) {
		return fmt.Errorf("unsupported logging.profile: %s", c.Logging.Profile)
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigDir returns the XDG-compliant config directory, or "" when it
// cannot be resolved.
func DefaultConfigDir() string {
	return gfconfig.GetAppConfigDir(AppName)
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := DefaultConfigDir()
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}

// mergeSettings deep-merges override into base. Nested maps are merged key by
// key; any other value in override replaces the one in base.
func mergeSettings(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		key := strings.ToLower(k)
		if next, ok := v.(map[string]any); ok {
			if current, ok := out[key].(map[string]any); ok {
				out[key] = mergeSettings(current, next)
				continue
			}
		}
		out[key] = v
	}
	return out
}
