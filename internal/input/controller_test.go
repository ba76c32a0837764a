package input

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/motion"
)

func newMovement() *motion.Movement {
	frame := models.NewFrame(math3d.Zero3(), math3d.Zero3())
	return motion.New(&frame, math3d.M3(false, true, false))
}

func TestKeyMaps(t *testing.T) {
	m := newMovement()
	c := NewController(m, 2, 1)

	tests := []struct {
		key     string
		linear  math3d.Vec3
		angular math3d.Vec3
	}{
		{KeyForward, math3d.V3(0, 0, 2), math3d.Zero3()},
		{KeyBackward, math3d.V3(0, 0, -2), math3d.Zero3()},
		{KeyLeft, math3d.V3(-2, 0, 0), math3d.Zero3()},
		{KeyRight, math3d.V3(2, 0, 0), math3d.Zero3()},
		{KeyRise, math3d.V3(0, 2, 0), math3d.Zero3()},
		{KeySink, math3d.V3(0, -2, 0), math3d.Zero3()},
		{KeyLookUp, math3d.Zero3(), math3d.V3(-1, 0, 0)},
		{KeyLookDown, math3d.Zero3(), math3d.V3(1, 0, 0)},
		{KeyTurnLeft, math3d.Zero3(), math3d.V3(0, 1, 0)},
		{KeyTurnRight, math3d.Zero3(), math3d.V3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if !c.KeyDown(tt.key) {
				t.Fatalf("KeyDown(%q) = false", tt.key)
			}
			if m.Velocity != tt.linear || m.AngularVelocity != tt.angular {
				t.Errorf("velocities = %v / %v, want %v / %v", m.Velocity, m.AngularVelocity, tt.linear, tt.angular)
			}
			if !c.KeyUp(tt.key) {
				t.Fatalf("KeyUp(%q) = false", tt.key)
			}
			if m.Velocity != math3d.Zero3() || m.AngularVelocity != math3d.Zero3() {
				t.Errorf("velocities not restored: %v / %v", m.Velocity, m.AngularVelocity)
			}
		})
	}
}

func TestKeyRepeatGuard(t *testing.T) {
	m := newMovement()
	c := NewController(m, 2, 1)

	if !c.KeyDown(KeyForward) {
		t.Fatal("first press ignored")
	}
	if c.KeyDown(KeyForward) {
		t.Error("repeat press accepted")
	}
	if m.Velocity != math3d.V3(0, 0, 2) {
		t.Errorf("velocity = %v after repeat, want (0, 0, 2)", m.Velocity)
	}

	c.KeyDown(KeyRight)
	if m.Velocity != math3d.V3(2, 0, 2) {
		t.Errorf("combined velocity = %v, want (2, 0, 2)", m.Velocity)
	}

	if c.KeyUp(KeyLeft) {
		t.Error("releasing a key that was never held succeeded")
	}
	if c.KeyDown("q") || c.Handles("q") {
		t.Error("unmapped key accepted")
	}

	c.ReleaseAll()
	if m.Velocity != math3d.Zero3() {
		t.Errorf("velocity = %v after ReleaseAll", m.Velocity)
	}
	if c.Held(KeyForward) || c.Held(KeyRight) {
		t.Error("keys still held after ReleaseAll")
	}
}

func TestReleaseAfter(t *testing.T) {
	m := newMovement()
	c := NewController(m, 2, 1, WithReleaseAfter(150*time.Millisecond))

	c.KeyDown(KeyForward)
	c.Update(100 * time.Millisecond)
	if !c.Held(KeyForward) {
		t.Fatal("key released too early")
	}

	// A repeat press restarts the countdown.
	c.KeyDown(KeyForward)
	c.Update(100 * time.Millisecond)
	if !c.Held(KeyForward) {
		t.Fatal("repeat did not keep the key held")
	}

	c.Update(100 * time.Millisecond)
	if c.Held(KeyForward) {
		t.Error("key still held after the release timeout")
	}
	if m.Velocity != math3d.Zero3() {
		t.Errorf("velocity = %v after auto release", m.Velocity)
	}
}

func TestSmoothing(t *testing.T) {
	m := newMovement()
	c := NewController(m, 2, 1, WithSmoothing(100, 6, 1))

	c.KeyDown(KeyForward)
	if m.Velocity != math3d.Zero3() {
		t.Fatalf("smoothed velocity jumped to %v on press", m.Velocity)
	}

	c.Update(10 * time.Millisecond)
	if z := m.Velocity.Z; z <= 0 || z >= 2 {
		t.Errorf("after one step velocity.z = %v, want between 0 and 2", z)
	}

	for range 300 {
		c.Update(10 * time.Millisecond)
	}
	if math.Abs(m.Velocity.Z-2) > 1e-3 {
		t.Errorf("velocity.z = %v, want to settle at 2", m.Velocity.Z)
	}

	c.KeyUp(KeyForward)
	for range 300 {
		c.Update(10 * time.Millisecond)
	}
	if math.Abs(m.Velocity.Z) > 1e-3 {
		t.Errorf("velocity.z = %v, want to settle at 0", m.Velocity.Z)
	}
}
