// pkg/input/latch_test.go
package input

import "testing"

func TestLatch_SetAndSnapshot_ReflectsHeldActions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected Controls
	}{
		{
			name:     "no_actions",
			actions:  nil,
			expected: Controls{},
		},
		{
			name:     "thrust_only",
			actions:  []Action{ActionThrust},
			expected: Controls{Thrust: true},
		},
		{
			name:     "boosted_climb",
			actions:  []Action{ActionThrust, ActionBoost},
			expected: Controls{Thrust: true, Boost: true},
		},
		{
			name:     "banking_while_firing",
			actions:  []Action{ActionRollLeft, ActionFire},
			expected: Controls{RollLeft: true, Fire: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latch := NewLatch()
			for _, a := range tt.actions {
				latch.Set(a, true)
			}

			if got := latch.Snapshot(); got != tt.expected {
				t.Errorf("Snapshot() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestLatch_Release_ClearsSingleAction(t *testing.T) {
	latch := NewLatch()
	latch.Set(ActionThrust, true)
	latch.Set(ActionFire, true)

	latch.Set(ActionFire, false)

	got := latch.Snapshot()
	if !got.Thrust {
		t.Error("expected thrust to stay held")
	}
	if got.Fire {
		t.Error("expected fire to be released")
	}
}

func TestLatch_Reset_ReleasesEverything(t *testing.T) {
	latch := NewLatch()
	latch.Set(ActionThrust, true)
	latch.Set(ActionBoost, true)
	latch.Set(ActionRollRight, true)

	latch.Reset()

	if got := latch.Snapshot(); got != (Controls{}) {
		t.Errorf("Snapshot() after Reset = %+v, expected empty", got)
	}
}

func TestLatch_OutOfRangeAction_Ignored(t *testing.T) {
	latch := NewLatch()

	latch.Set(Action(-1), true)
	latch.Set(Action(99), true)

	if got := latch.Snapshot(); got != (Controls{}) {
		t.Errorf("Snapshot() = %+v, expected empty after out-of-range sets", got)
	}
	if latch.Held(Action(99)) {
		t.Error("Held() reported true for out-of-range action")
	}
}

func TestControls_RollDirection_CollapsesButtons(t *testing.T) {
	tests := []struct {
		name     string
		controls Controls
		expected float64
	}{
		{name: "neither", controls: Controls{}, expected: 0},
		{name: "left", controls: Controls{RollLeft: true}, expected: 1},
		{name: "right", controls: Controls{RollRight: true}, expected: -1},
		{name: "both_cancel", controls: Controls{RollLeft: true, RollRight: true}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.controls.RollDirection(); got != tt.expected {
				t.Errorf("RollDirection() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestControls_Idle_RequiresNoThrustInput(t *testing.T) {
	tests := []struct {
		name     string
		controls Controls
		expected bool
	}{
		{name: "hands_off", controls: Controls{}, expected: true},
		{name: "rolling_still_idle", controls: Controls{RollLeft: true}, expected: true},
		{name: "thrusting", controls: Controls{Thrust: true}, expected: false},
		{name: "reversing", controls: Controls{Reverse: true}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.controls.Idle(); got != tt.expected {
				t.Errorf("Idle() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
