// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognized by LoadConfigFromEnv. Each one
// overrides a single field of the default configuration.
const (
	EnvUpdateRate    = "JP8_UPDATE_RATE"
	EnvControlScheme = "JP8_CONTROL_SCHEME"
	EnvAPIEnabled    = "JP8_API_ENABLED"
	EnvAPIAddr       = "JP8_API_ADDR"
	EnvAPIStreamRate = "JP8_API_STREAM_RATE"
	EnvRenderBackend = "JP8_RENDER_BACKEND"
	EnvRandSeed      = "JP8_RAND_SEED"
	EnvMaxSpeed      = "JP8_MAX_SPEED"
)

// LoadConfigFromEnv builds a configuration from the defaults plus any
// JP8_* environment overrides, then validates the result.
func LoadConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment configuration invalid: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides layers the JP8_* environment variables over an
// existing configuration, typically one loaded from a file. The caller
// is expected to validate afterwards.
func ApplyEnvOverrides(cfg *Config) error {
	if err := envInt(EnvUpdateRate, &cfg.Session.UpdateRate); err != nil {
		return err
	}
	if err := envScheme(EnvControlScheme, &cfg.Session.ControlScheme); err != nil {
		return err
	}
	if err := envBool(EnvAPIEnabled, &cfg.API.Enabled); err != nil {
		return err
	}
	envString(EnvAPIAddr, &cfg.API.Addr)
	if err := envInt(EnvAPIStreamRate, &cfg.API.StreamRate); err != nil {
		return err
	}
	envString(EnvRenderBackend, &cfg.Render.Backend)
	if err := envFloat(EnvMaxSpeed, &cfg.Flight.MaxSpeed); err != nil {
		return err
	}

	var seed int64
	set, err := envInt64(EnvRandSeed, &seed)
	if err != nil {
		return err
	}
	if set {
		cfg.Flight.RandSeed = seed
		cfg.Camera.RandSeed = seed
	}

	return nil
}

func envString(key string, target *string) {
	if value, ok := os.LookupEnv(key); ok {
		*target = value
	}
}

func envInt(key string, target *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}

func envFloat(key string, target *float64) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid number %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}

func envInt64(key string, target *int64) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return false, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return false, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	*target = parsed
	return true, nil
}

func envBool(key string, target *bool) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: invalid boolean %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}

func envScheme(key string, target *ControlScheme) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	scheme, err := ParseControlScheme(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = scheme
	return nil
}
