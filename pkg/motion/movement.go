// Package motion integrates velocities into frame placement.
package motion

import (
	"time"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
)

// Movement moves a frame by a velocity and spins it by an angular velocity.
//
// Velocity is expressed in the frame's local axes: before it is applied it
// is rotated by the components of the frame's rotation selected by
// LockToRotation. A camera that walks along the ground but looks in every
// direction locks only Y.
type Movement struct {
	Target          *models.Frame
	Velocity        math3d.Vec3 // Units per second
	AngularVelocity math3d.Vec3 // Radians per second
	LockToRotation  math3d.Mask3
	Enabled         bool
}

// New creates an enabled Movement for target.
func New(target *models.Frame, lock math3d.Mask3) *Movement {
	return &Movement{
		Target:         target,
		LockToRotation: lock,
		Enabled:        true,
	}
}

// Update advances the target by dt.
func (m *Movement) Update(dt time.Duration) {
	if !m.Enabled || m.Target == nil {
		return
	}
	secs := dt.Seconds()

	heading := m.LockToRotation.Pick(m.Target.Rotation)
	m.Target.Translate(m.Velocity.Rotate(heading).Scale(secs))
	m.Target.Rotate(m.AngularVelocity.Scale(secs))
}

// Stop zeroes both velocities.
func (m *Movement) Stop() {
	m.Velocity = math3d.Zero3()
	m.AngularVelocity = math3d.Zero3()
}
