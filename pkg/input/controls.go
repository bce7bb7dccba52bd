// pkg/input/controls.go
package input

// Controls is the per-frame snapshot of pilot intent. The flight model,
// camera rig and telemetry all read the same snapshot during a frame;
// none of them write it.
type Controls struct {
	Thrust    bool
	Reverse   bool
	RollLeft  bool
	RollRight bool
	Boost     bool
	Fire      bool
}

// RollDirection collapses the two roll buttons into a single signed
// command: +1 banks left, -1 banks right, 0 when neither or both are
// held.
func (c Controls) RollDirection() float64 {
	dir := 0.0
	if c.RollLeft {
		dir++
	}
	if c.RollRight {
		dir--
	}
	return dir
}

// Idle reports whether neither thrust nor reverse is held. Refueling
// only happens while idle.
func (c Controls) Idle() bool {
	return !c.Thrust && !c.Reverse
}
