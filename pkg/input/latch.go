// pkg/input/latch.go
package input

// Action identifies one latched control channel.
type Action int

const (
	ActionThrust Action = iota
	ActionReverse
	ActionRollLeft
	ActionRollRight
	ActionBoost
	ActionFire
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionThrust:
		return "thrust"
	case ActionReverse:
		return "reverse"
	case ActionRollLeft:
		return "roll_left"
	case ActionRollRight:
		return "roll_right"
	case ActionBoost:
		return "boost"
	case ActionFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Latch stabilizes raw press/release events into a per-frame Controls
// snapshot. Events may arrive at any rate between frames; the snapshot
// taken at the top of a frame is what the whole frame sees.
type Latch struct {
	held [actionCount]bool
}

// NewLatch creates a latch with every action released.
func NewLatch() *Latch {
	return &Latch{}
}

// Set records the held state of one action.
func (l *Latch) Set(a Action, down bool) {
	if a < 0 || a >= actionCount {
		return
	}
	l.held[a] = down
}

// Held reports the current raw state of one action.
func (l *Latch) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return l.held[a]
}

// Snapshot returns the per-frame control struct built from the latched
// states.
func (l *Latch) Snapshot() Controls {
	return Controls{
		Thrust:    l.held[ActionThrust],
		Reverse:   l.held[ActionReverse],
		RollLeft:  l.held[ActionRollLeft],
		RollRight: l.held[ActionRollRight],
		Boost:     l.held[ActionBoost],
		Fire:      l.held[ActionFire],
	}
}

// Reset releases every action, used when the host window loses focus so
// keys do not stay stuck down.
func (l *Latch) Reset() {
	l.held = [actionCount]bool{}
}
