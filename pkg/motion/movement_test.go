package motion

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
)

const eps = 1e-9

func TestMovementUpdate(t *testing.T) {
	tests := []struct {
		name     string
		rotation math3d.Vec3
		lock     math3d.Mask3
		velocity math3d.Vec3
		dt       time.Duration
		want     math3d.Vec3
	}{
		{
			name:     "unlocked ignores heading",
			rotation: math3d.V3(0, math.Pi/2, 0),
			lock:     math3d.M3(false, false, false),
			velocity: math3d.V3(0, 0, 2),
			dt:       500 * time.Millisecond,
			want:     math3d.V3(0, 0, 1),
		},
		{
			name:     "locked to yaw",
			rotation: math3d.V3(0, math.Pi/2, 0),
			lock:     math3d.M3(false, true, false),
			velocity: math3d.V3(0, 0, 2),
			dt:       500 * time.Millisecond,
			want:     math3d.V3(-1, 0, 0),
		},
		{
			name:     "pitch is masked out",
			rotation: math3d.V3(math.Pi/4, math.Pi/2, 0),
			lock:     math3d.M3(false, true, false),
			velocity: math3d.V3(0, 0, 2),
			dt:       500 * time.Millisecond,
			want:     math3d.V3(-1, 0, 0),
		},
		{
			name:     "zero dt",
			rotation: math3d.Zero3(),
			lock:     math3d.M3(true, true, true),
			velocity: math3d.V3(5, 5, 5),
			dt:       0,
			want:     math3d.Zero3(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := models.NewFrame(math3d.Zero3(), tt.rotation)
			m := New(&frame, tt.lock)
			m.Velocity = tt.velocity

			m.Update(tt.dt)

			if !frame.Position.ApproxEqual(tt.want, eps) {
				t.Errorf("position = %v, want %v", frame.Position, tt.want)
			}
			if frame.Rotation != tt.rotation {
				t.Errorf("rotation changed to %v without angular velocity", frame.Rotation)
			}
		})
	}
}

func TestMovementAngularVelocity(t *testing.T) {
	frame := models.NewFrame(math3d.Zero3(), math3d.Zero3())
	m := New(&frame, math3d.Mask3{})
	m.AngularVelocity = math3d.V3(1, 0, -2)

	for range 4 {
		m.Update(250 * time.Millisecond)
	}

	if !frame.Rotation.ApproxEqual(math3d.V3(1, 0, -2), eps) {
		t.Errorf("rotation = %v, want (1, 0, -2)", frame.Rotation)
	}
}

func TestMovementDisabled(t *testing.T) {
	frame := models.NewFrame(math3d.V3(1, 2, 3), math3d.Zero3())
	m := New(&frame, math3d.Mask3{})
	m.Velocity = math3d.V3(1, 1, 1)
	m.AngularVelocity = math3d.V3(1, 1, 1)
	m.Enabled = false

	m.Update(time.Second)

	if frame.Position != math3d.V3(1, 2, 3) || frame.Rotation != math3d.Zero3() {
		t.Errorf("disabled movement changed frame to %v / %v", frame.Position, frame.Rotation)
	}

	var detached Movement
	detached.Enabled = true
	detached.Update(time.Second)
}

func TestMovementStop(t *testing.T) {
	m := New(nil, math3d.Mask3{})
	m.Velocity = math3d.V3(1, 2, 3)
	m.AngularVelocity = math3d.V3(4, 5, 6)
	m.Stop()
	if m.Velocity != math3d.Zero3() || m.AngularVelocity != math3d.Zero3() {
		t.Errorf("Stop left %v / %v", m.Velocity, m.AngularVelocity)
	}
}
