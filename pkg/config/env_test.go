package config

import (
	"os"
	"strings"
	"testing"
)

// clearEnv unsets every recognized variable and returns a restore
// function so tests never leak into the ambient environment.
func clearEnv(t *testing.T) {
	t.Helper()

	envVars := []string{
		EnvUpdateRate,
		EnvControlScheme,
		EnvAPIEnabled,
		EnvAPIAddr,
		EnvAPIStreamRate,
		EnvRenderBackend,
		EnvRandSeed,
		EnvMaxSpeed,
	}

	originalEnv := make(map[string]string)
	for _, env := range envVars {
		originalEnv[env] = os.Getenv(env)
		os.Unsetenv(env)
	}

	t.Cleanup(func() {
		for env, value := range originalEnv {
			if value != "" {
				os.Setenv(env, value)
			} else {
				os.Unsetenv(env)
			}
		}
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		clearEnv(t)

		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv failed: %v", err)
		}

		defaults := DefaultConfig()
		if config.Session.UpdateRate != defaults.Session.UpdateRate {
			t.Errorf("Expected UpdateRate %d, got %d", defaults.Session.UpdateRate, config.Session.UpdateRate)
		}
		if config.Session.ControlScheme != defaults.Session.ControlScheme {
			t.Errorf("Expected ControlScheme %v, got %v", defaults.Session.ControlScheme, config.Session.ControlScheme)
		}
		if config.API.Addr != defaults.API.Addr {
			t.Errorf("Expected Addr '%s', got '%s'", defaults.API.Addr, config.API.Addr)
		}
		if config.API.Enabled != defaults.API.Enabled {
			t.Errorf("Expected Enabled %t, got %t", defaults.API.Enabled, config.API.Enabled)
		}
		if config.Render.Backend != defaults.Render.Backend {
			t.Errorf("Expected Backend '%s', got '%s'", defaults.Render.Backend, config.Render.Backend)
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvUpdateRate, "144")
		os.Setenv(EnvControlScheme, "fps")
		os.Setenv(EnvAPIEnabled, "false")
		os.Setenv(EnvAPIAddr, "0.0.0.0:9999")
		os.Setenv(EnvAPIStreamRate, "30")
		os.Setenv(EnvRenderBackend, "terminal")
		os.Setenv(EnvRandSeed, "1234567")
		os.Setenv(EnvMaxSpeed, "130")

		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv failed: %v", err)
		}

		if config.Session.UpdateRate != 144 {
			t.Errorf("Expected UpdateRate 144, got %d", config.Session.UpdateRate)
		}
		if config.Session.ControlScheme != SchemeFPS {
			t.Errorf("Expected ControlScheme %v, got %v", SchemeFPS, config.Session.ControlScheme)
		}
		if config.API.Enabled {
			t.Error("Expected API to be disabled")
		}
		if config.API.Addr != "0.0.0.0:9999" {
			t.Errorf("Expected Addr '0.0.0.0:9999', got '%s'", config.API.Addr)
		}
		if config.API.StreamRate != 30 {
			t.Errorf("Expected StreamRate 30, got %d", config.API.StreamRate)
		}
		if config.Render.Backend != "terminal" {
			t.Errorf("Expected Backend 'terminal', got '%s'", config.Render.Backend)
		}
		if config.Flight.MaxSpeed != 130 {
			t.Errorf("Expected Flight.MaxSpeed 130, got %v", config.Flight.MaxSpeed)
		}

		// The seed feeds both tuning tables
		if config.Flight.RandSeed != 1234567 {
			t.Errorf("Expected Flight.RandSeed 1234567, got %d", config.Flight.RandSeed)
		}
		if config.Camera.RandSeed != 1234567 {
			t.Errorf("Expected Camera.RandSeed 1234567, got %d", config.Camera.RandSeed)
		}
	})

	t.Run("InvalidInteger", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvUpdateRate, "not-a-number")

		config, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected error for invalid integer, got nil")
		}
		if config != nil {
			t.Error("Expected nil config on parse failure, got non-nil")
		}
		if err != nil && !strings.Contains(err.Error(), EnvUpdateRate) {
			t.Errorf("Expected error to name %s, got '%s'", EnvUpdateRate, err.Error())
		}
	})

	t.Run("InvalidFloat", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvMaxSpeed, "fast")

		_, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected error for invalid number, got nil")
		}
		if err != nil && !strings.Contains(err.Error(), EnvMaxSpeed) {
			t.Errorf("Expected error to name %s, got '%s'", EnvMaxSpeed, err.Error())
		}
	})

	t.Run("InvalidBoolean", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvAPIEnabled, "sometimes")

		_, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected error for invalid boolean, got nil")
		}
		if err != nil && !strings.Contains(err.Error(), EnvAPIEnabled) {
			t.Errorf("Expected error to name %s, got '%s'", EnvAPIEnabled, err.Error())
		}
	})

	t.Run("UnknownScheme", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvControlScheme, "warthog")

		_, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected error for unknown scheme, got nil")
		}
		if err != nil && !strings.Contains(err.Error(), "unknown control scheme") {
			t.Errorf("Expected error to mention unknown control scheme, got '%s'", err.Error())
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		clearEnv(t)

		// Parses fine, fails validation
		os.Setenv(EnvUpdateRate, "-5")

		_, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected validation error for negative rate, got nil")
		}
		if err != nil && !strings.Contains(err.Error(), "environment configuration invalid") {
			t.Errorf("Expected validation wrap, got '%s'", err.Error())
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		clearEnv(t)

		os.Setenv(EnvRenderBackend, "plasma")

		_, err := LoadConfigFromEnv()
		if err == nil {
			t.Error("Expected validation error for unknown backend, got nil")
		}
		if err != nil && !strings.Contains(err.Error(), "render backend") {
			t.Errorf("Expected error to mention render backend, got '%s'", err.Error())
		}
	})
}
