// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/config"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
)

func TestBindingsFor_CoversAllActions(t *testing.T) {
	schemes := []config.ControlScheme{
		config.SchemeSpacecraft,
		config.SchemeFPS,
		config.SchemeThirdPerson,
	}

	wantActions := []input.Action{
		input.ActionThrust,
		input.ActionReverse,
		input.ActionRollLeft,
		input.ActionRollRight,
		input.ActionBoost,
		input.ActionFire,
	}

	for _, scheme := range schemes {
		t.Run(scheme.String(), func(t *testing.T) {
			bindings := bindingsFor(scheme)

			if len(bindings) != len(wantActions) {
				t.Fatalf("Expected %d bindings, got %d", len(wantActions), len(bindings))
			}

			seenActions := make(map[input.Action]bool)
			seenButtons := make(map[string]bool)
			for _, b := range bindings {
				if seenActions[b.action] {
					t.Errorf("Action %v bound twice", b.action)
				}
				seenActions[b.action] = true

				if seenButtons[b.button] {
					t.Errorf("Button %q registered twice", b.button)
				}
				seenButtons[b.button] = true

				if len(b.keys) == 0 {
					t.Errorf("Button %q has no keys", b.button)
				}
			}

			for _, action := range wantActions {
				if !seenActions[action] {
					t.Errorf("Scheme does not bind action %v", action)
				}
			}
		})
	}
}

func TestBindingsFor_SchemeSpecificKeys(t *testing.T) {
	tests := []struct {
		name    string
		scheme  config.ControlScheme
		button  string
		wantKey engo.Key
	}{
		{"spacecraft rolls with A", config.SchemeSpacecraft, "rollLeft", engo.KeyA},
		{"fps rolls with Q", config.SchemeFPS, "rollLeft", engo.KeyQ},
		{"third person rolls with left arrow", config.SchemeThirdPerson, "rollLeft", engo.KeyArrowLeft},
		{"third person boosts with right shift", config.SchemeThirdPerson, "boost", engo.KeyRightShift},
		{"fps fires with space", config.SchemeFPS, "fire", engo.KeySpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, b := range bindingsFor(tt.scheme) {
				if b.button != tt.button {
					continue
				}
				for _, k := range b.keys {
					if k == tt.wantKey {
						return
					}
				}
				t.Fatalf("Button %q missing key %v", tt.button, tt.wantKey)
			}
			t.Fatalf("Scheme has no button %q", tt.button)
		})
	}
}

func TestBindingsFor_SpacecraftDoublesArrowKeys(t *testing.T) {
	for _, b := range bindingsFor(config.SchemeSpacecraft) {
		switch b.button {
		case "thrust", "reverse", "rollLeft", "rollRight":
			if len(b.keys) != 2 {
				t.Errorf("Expected two keys for %q, got %d", b.button, len(b.keys))
			}
		case "boost", "fire":
			if len(b.keys) != 1 {
				t.Errorf("Expected one key for %q, got %d", b.button, len(b.keys))
			}
		}
	}
}

func TestNewInputSystem(t *testing.T) {
	session := newTestSession(t)

	is := NewInputSystem(session, config.SchemeFPS)

	if is == nil {
		t.Fatal("NewInputSystem() returned nil")
	}

	if is.session != session {
		t.Error("Expected session to be set correctly")
	}

	if len(is.bindings) != 6 {
		t.Errorf("Expected 6 bindings, got %d", len(is.bindings))
	}
}
