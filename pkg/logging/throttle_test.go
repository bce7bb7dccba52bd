// pkg/logging/throttle_test.go
package logging

import (
	"testing"
	"time"
)

// fixedClock lets the tests advance time without sleeping.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time {
	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestThrottle(maxPerWindow int, window time.Duration) (*Throttle, *fixedClock) {
	clock := &fixedClock{t: time.Unix(1000, 0)}
	th := NewThrottle(maxPerWindow, window)
	th.now = clock.now
	return th, clock
}

func TestThrottle_WithinBudget_Allows(t *testing.T) {
	th, _ := newTestThrottle(3, time.Second)

	for i := 0; i < 3; i++ {
		if !th.Allow("nan_heal") {
			t.Fatalf("Allow() = false on call %d, expected budget of 3", i+1)
		}
	}
}

func TestThrottle_OverBudget_Denies(t *testing.T) {
	th, _ := newTestThrottle(2, time.Second)

	th.Allow("camera_jump")
	th.Allow("camera_jump")

	if th.Allow("camera_jump") {
		t.Error("Allow() = true past the per-window budget")
	}
}

func TestThrottle_WindowElapsed_RefillsBudget(t *testing.T) {
	th, clock := newTestThrottle(1, time.Second)

	if !th.Allow("nan_heal") {
		t.Fatal("first Allow() should succeed")
	}
	if th.Allow("nan_heal") {
		t.Fatal("second Allow() in same instant should fail")
	}

	clock.advance(1100 * time.Millisecond)

	if !th.Allow("nan_heal") {
		t.Error("Allow() = false after a full window elapsed")
	}
}

func TestThrottle_DistinctKeys_IndependentBudgets(t *testing.T) {
	th, _ := newTestThrottle(1, time.Second)

	if !th.Allow("nan_heal") {
		t.Fatal("first key should be allowed")
	}
	if !th.Allow("camera_jump") {
		t.Error("second key should have its own budget")
	}
	if th.Allow("nan_heal") {
		t.Error("first key should be exhausted")
	}
}

func TestThrottle_PartialWindow_NoEarlyRefill(t *testing.T) {
	th, clock := newTestThrottle(1, time.Second)

	th.Allow("nan_heal")
	clock.advance(300 * time.Millisecond)

	if th.Allow("nan_heal") {
		t.Error("Allow() = true before the window elapsed")
	}
}
