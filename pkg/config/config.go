// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/camera"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/flight"
)

// Config is the full session configuration: the flight and camera
// tuning tables plus the host-side surfaces around them.
type Config struct {
	Flight  flight.Tuning `json:"flight"`
	Camera  camera.Tuning `json:"camera"`
	Session SessionConfig `json:"session"`
	API     APIConfig     `json:"api"`
	Render  RenderConfig  `json:"render"`
}

// SessionConfig controls the simulation loop.
type SessionConfig struct {
	UpdateRate    int           `json:"updateRate"` // simulation frames per second
	ControlScheme ControlScheme `json:"controlScheme"`
}

// APIConfig controls the telemetry HTTP surface.
type APIConfig struct {
	Enabled         bool   `json:"enabled"`
	Addr            string `json:"addr"`
	StreamRate      int    `json:"streamRate"` // websocket pushes per second
	ReadTimeoutSec  int    `json:"readTimeoutSec"`
	WriteTimeoutSec int    `json:"writeTimeoutSec"`
}

// RenderConfig selects and sizes the display backend.
type RenderConfig struct {
	Backend string `json:"backend"` // engo, terminal or none
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Title   string `json:"title"`
}

// ControlScheme selects how raw input maps onto flight controls.
type ControlScheme int

const (
	SchemeSpacecraft ControlScheme = iota
	SchemeFPS
	SchemeThirdPerson
)

var schemeNames = map[ControlScheme]string{
	SchemeSpacecraft:  "spacecraft",
	SchemeFPS:         "fps",
	SchemeThirdPerson: "third-person",
}

// String returns the scheme's configuration name.
func (s ControlScheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ParseControlScheme maps a configuration name onto a scheme. Unknown
// names are an error; the scheme set is closed.
func ParseControlScheme(name string) (ControlScheme, error) {
	for scheme, n := range schemeNames {
		if n == name {
			return scheme, nil
		}
	}
	return 0, fmt.Errorf("unknown control scheme %q", name)
}

// MarshalJSON encodes the scheme by name.
func (s ControlScheme) MarshalJSON() ([]byte, error) {
	name, ok := schemeNames[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal unknown control scheme %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a scheme by name, rejecting unknown names.
func (s *ControlScheme) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("control scheme must be a string: %w", err)
	}
	scheme, err := ParseControlScheme(name)
	if err != nil {
		return err
	}
	*s = scheme
	return nil
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s is invalid: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	if err := c.Flight.Validate(); err != nil {
		return fmt.Errorf("flight tuning: %w", err)
	}
	if err := c.Camera.Validate(); err != nil {
		return fmt.Errorf("camera tuning: %w", err)
	}
	if c.Session.UpdateRate <= 0 {
		return fmt.Errorf("session updateRate must be positive, got %d", c.Session.UpdateRate)
	}
	if _, ok := schemeNames[c.Session.ControlScheme]; !ok {
		return fmt.Errorf("unknown control scheme %d", int(c.Session.ControlScheme))
	}
	switch c.Render.Backend {
	case "engo", "terminal", "none":
	default:
		return fmt.Errorf("unknown render backend %q", c.Render.Backend)
	}
	if c.API.Enabled {
		if c.API.Addr == "" {
			return fmt.Errorf("api addr must be set when the api is enabled")
		}
		if c.API.StreamRate <= 0 {
			return fmt.Errorf("api streamRate must be positive, got %d", c.API.StreamRate)
		}
		if c.API.ReadTimeoutSec <= 0 || c.API.WriteTimeoutSec <= 0 {
			return fmt.Errorf("api timeouts must be positive, got read=%d write=%d",
				c.API.ReadTimeoutSec, c.API.WriteTimeoutSec)
		}
	}
	return nil
}

// DefaultConfig returns the stock session configuration
func DefaultConfig() *Config {
	return &Config{
		Flight: flight.DefaultTuning(),
		Camera: camera.DefaultTuning(),
		Session: SessionConfig{
			UpdateRate:    60,
			ControlScheme: SchemeSpacecraft,
		},
		API: APIConfig{
			Enabled:         true,
			Addr:            "localhost:8420",
			StreamRate:      10,
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 30,
		},
		Render: RenderConfig{
			Backend: "engo",
			Width:   1280,
			Height:  720,
			Title:   "JP-8 Kerosene",
		},
	}
}
