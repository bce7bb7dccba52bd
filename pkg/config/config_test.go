package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	// Test session values
	if config.Session.UpdateRate != 60 {
		t.Errorf("Expected UpdateRate 60, got %d", config.Session.UpdateRate)
	}
	if config.Session.ControlScheme != SchemeSpacecraft {
		t.Errorf("Expected ControlScheme %v, got %v", SchemeSpacecraft, config.Session.ControlScheme)
	}

	// Test API values
	if !config.API.Enabled {
		t.Error("Expected API to be enabled by default")
	}
	if config.API.Addr != "localhost:8420" {
		t.Errorf("Expected Addr 'localhost:8420', got '%s'", config.API.Addr)
	}
	if config.API.StreamRate != 10 {
		t.Errorf("Expected StreamRate 10, got %d", config.API.StreamRate)
	}

	// Test render values
	if config.Render.Backend != "engo" {
		t.Errorf("Expected Backend 'engo', got '%s'", config.Render.Backend)
	}
	if config.Render.Width != 1280 || config.Render.Height != 720 {
		t.Errorf("Expected 1280x720, got %dx%d", config.Render.Width, config.Render.Height)
	}

	// Tuning tables come from their packages' defaults
	if config.Flight.MaxSpeed != 100 {
		t.Errorf("Expected flight MaxSpeed 100, got %f", config.Flight.MaxSpeed)
	}
	if config.Camera.Distance != 14 {
		t.Errorf("Expected camera Distance 14, got %f", config.Camera.Distance)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoadConfig_Success(t *testing.T) {
	// Create temporary config file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.json")

	// Create test config data
	testConfig := DefaultConfig()
	testConfig.Session.UpdateRate = 120
	testConfig.Session.ControlScheme = SchemeFPS
	testConfig.API.Addr = "0.0.0.0:9000"
	testConfig.Flight.MaxSpeed = 140
	testConfig.Render.Backend = "terminal"

	// Write test config to file
	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	// Test loading config
	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify loaded config matches original
	if loadedConfig.Session.UpdateRate != testConfig.Session.UpdateRate {
		t.Errorf("Expected UpdateRate %d, got %d", testConfig.Session.UpdateRate, loadedConfig.Session.UpdateRate)
	}
	if loadedConfig.Session.ControlScheme != SchemeFPS {
		t.Errorf("Expected ControlScheme %v, got %v", SchemeFPS, loadedConfig.Session.ControlScheme)
	}
	if loadedConfig.API.Addr != testConfig.API.Addr {
		t.Errorf("Expected Addr '%s', got '%s'", testConfig.API.Addr, loadedConfig.API.Addr)
	}
	if loadedConfig.Flight.MaxSpeed != testConfig.Flight.MaxSpeed {
		t.Errorf("Expected MaxSpeed %f, got %f", testConfig.Flight.MaxSpeed, loadedConfig.Flight.MaxSpeed)
	}
	if loadedConfig.Render.Backend != testConfig.Render.Backend {
		t.Errorf("Expected Backend '%s', got '%s'", testConfig.Render.Backend, loadedConfig.Render.Backend)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	nonExistentPath := "/path/that/does/not/exist/config.json"

	config, err := LoadConfig(nonExistentPath)

	if err == nil {
		t.Error("Expected error when loading non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected nil config when file not found, got non-nil")
	}

	expectedSubstring := "failed to read config file"
	if err != nil && !strings.Contains(err.Error(), expectedSubstring) {
		t.Errorf("Expected error to contain '%s', got '%s'", expectedSubstring, err.Error())
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	// Create temporary file with invalid JSON
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid_config.json")

	invalidJSON := `{"session": {"updateRate": 60}, invalid json}`
	err := os.WriteFile(configPath, []byte(invalidJSON), 0644)
	if err != nil {
		t.Fatalf("Failed to write invalid JSON file: %v", err)
	}

	config, err := LoadConfig(configPath)

	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
	if config != nil {
		t.Error("Expected nil config when JSON is invalid, got non-nil")
	}

	expectedSubstring := "failed to parse config file"
	if err != nil && !strings.Contains(err.Error(), expectedSubstring) {
		t.Errorf("Expected error to contain '%s', got '%s'", expectedSubstring, err.Error())
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("ZeroUpdateRate", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "zero_rate.json")

		broken := DefaultConfig()
		broken.Session.UpdateRate = 0

		data, err := json.MarshalIndent(broken, "", "  ")
		if err != nil {
			t.Fatalf("Failed to marshal config: %v", err)
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err == nil {
			t.Error("Expected validation error, got nil")
		}
		if config != nil {
			t.Error("Expected nil config on validation failure, got non-nil")
		}
		if err != nil && !strings.Contains(err.Error(), "updateRate") {
			t.Errorf("Expected error to mention updateRate, got '%s'", err.Error())
		}
	})

	t.Run("UnknownControlScheme", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "bad_scheme.json")

		// Hand-written payload since the marshaler cannot produce an unknown scheme
		payload := `{"session": {"updateRate": 60, "controlScheme": "warthog"}}`
		if err := os.WriteFile(configPath, []byte(payload), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err == nil {
			t.Error("Expected error for unknown control scheme, got nil")
		}
		if config != nil {
			t.Error("Expected nil config for unknown control scheme, got non-nil")
		}
		if err != nil && !strings.Contains(err.Error(), "unknown control scheme") {
			t.Errorf("Expected error to mention unknown control scheme, got '%s'", err.Error())
		}
	})
}

func TestSaveConfig_Success(t *testing.T) {
	// Create test config
	testConfig := DefaultConfig()
	testConfig.Session.UpdateRate = 144
	testConfig.Session.ControlScheme = SchemeThirdPerson
	testConfig.Camera.Distance = 20

	// Create temporary file path
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "save_test_config.json")

	// Test saving config
	err := SaveConfig(testConfig, configPath)
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Load the saved config and verify contents
	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loadedConfig.Session.UpdateRate != testConfig.Session.UpdateRate {
		t.Errorf("Expected UpdateRate %d, got %d", testConfig.Session.UpdateRate, loadedConfig.Session.UpdateRate)
	}
	if loadedConfig.Session.ControlScheme != SchemeThirdPerson {
		t.Errorf("Expected ControlScheme %v, got %v", SchemeThirdPerson, loadedConfig.Session.ControlScheme)
	}
	if loadedConfig.Camera.Distance != testConfig.Camera.Distance {
		t.Errorf("Expected Distance %f, got %f", testConfig.Camera.Distance, loadedConfig.Camera.Distance)
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	testConfig := DefaultConfig()

	// Parent directory does not exist, so the write must fail
	invalidPath := filepath.Join(t.TempDir(), "missing", "config.json")

	err := SaveConfig(testConfig, invalidPath)

	if err == nil {
		t.Error("Expected error when saving to invalid path, got nil")
	}

	expectedSubstring := "failed to write config file"
	if err != nil && !strings.Contains(err.Error(), expectedSubstring) {
		t.Errorf("Expected error to contain '%s', got '%s'", expectedSubstring, err.Error())
	}
}

func TestSaveConfig_NilConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nil_config.json")

	err := SaveConfig(nil, configPath)

	if err == nil {
		t.Error("Expected error when saving nil config, got nil")
	}
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Error("Expected no file to be created for nil config")
	}
}

func TestControlScheme_Names(t *testing.T) {
	tests := []struct {
		name   string
		scheme ControlScheme
		text   string
	}{
		{name: "Spacecraft", scheme: SchemeSpacecraft, text: "spacecraft"},
		{name: "FPS", scheme: SchemeFPS, text: "fps"},
		{name: "ThirdPerson", scheme: SchemeThirdPerson, text: "third-person"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scheme.String(); got != tt.text {
				t.Errorf("String() = '%s', expected '%s'", got, tt.text)
			}

			parsed, err := ParseControlScheme(tt.text)
			if err != nil {
				t.Fatalf("ParseControlScheme('%s') failed: %v", tt.text, err)
			}
			if parsed != tt.scheme {
				t.Errorf("ParseControlScheme('%s') = %v, expected %v", tt.text, parsed, tt.scheme)
			}
		})
	}
}

func TestControlScheme_ParseUnknown(t *testing.T) {
	_, err := ParseControlScheme("autopilot")
	if err == nil {
		t.Error("Expected error for unknown scheme name, got nil")
	}
}

func TestControlScheme_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SchemeThirdPerson)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"third-person"` {
		t.Errorf("Marshal = %s, expected %s", data, `"third-person"`)
	}

	var scheme ControlScheme
	if err := json.Unmarshal(data, &scheme); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if scheme != SchemeThirdPerson {
		t.Errorf("Unmarshal = %v, expected %v", scheme, SchemeThirdPerson)
	}

	// Unknown names and non-string payloads are rejected
	if err := json.Unmarshal([]byte(`"warthog"`), &scheme); err == nil {
		t.Error("Expected error unmarshaling unknown scheme name, got nil")
	}
	if err := json.Unmarshal([]byte(`7`), &scheme); err == nil {
		t.Error("Expected error unmarshaling numeric scheme, got nil")
	}

	// Out-of-range values cannot be marshaled
	if _, err := json.Marshal(ControlScheme(42)); err == nil {
		t.Error("Expected error marshaling unknown scheme value, got nil")
	}
}
