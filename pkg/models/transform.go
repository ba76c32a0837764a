// Package models holds the positionable scene entities of gravel3d and the
// triangles they flatten into.
package models

import (
	"github.com/taigrr/gravel3d/pkg/math3d"
)

// MaxSortableZ is the depth reported by geometry at infinity. Anything that
// sorts at MaxSortableZ is painted first.
const MaxSortableZ = 10000

// Frame is the placement shared by every transform variant.
type Frame struct {
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in radians, applied Z, X, Y
	// ScaleFactors is carried for authoring but not applied to geometry.
	ScaleFactors math3d.Vec3
}

// NewFrame creates a frame with unit scale.
func NewFrame(position, rotation math3d.Vec3) Frame {
	return Frame{
		Position:     position,
		Rotation:     rotation,
		ScaleFactors: math3d.One3(),
	}
}

// Base returns the frame itself, so variants embedding a Frame expose it.
func (f *Frame) Base() *Frame {
	return f
}

// Translate moves the frame by v.
func (f *Frame) Translate(v math3d.Vec3) {
	f.Position = f.Position.Add(v)
}

// Rotate adds euler to the frame's rotation.
func (f *Frame) Rotate(euler math3d.Vec3) {
	f.Rotation = f.Rotation.Add(euler)
}

// Scale multiplies the scale factors component-wise by v.
func (f *Frame) Scale(v math3d.Vec3) {
	f.ScaleFactors = f.ScaleFactors.Mul(v)
}

// SortableZ returns the painter's sort key: the frame's z position.
func (f *Frame) SortableZ() float64 {
	return f.Position.Z
}

// relativeTo returns the position and rotation of f as seen from space.
func (f *Frame) relativeTo(space *Frame) (position, rotation math3d.Vec3) {
	position = f.Position.Sub(space.Position).Orbit(space.Rotation)
	rotation = f.Rotation.Sub(space.Rotation)
	return position, rotation
}

// Transform is anything that can be placed in a scene and rendered.
type Transform interface {
	// Base returns the mutable placement of the transform.
	Base() *Frame

	// ToSpace returns a new transform holding the same content as seen
	// from space. The receiver is left untouched.
	ToSpace(space *Frame) Transform

	// Triangles flattens the transform's geometry.
	Triangles() []Triangle

	// SortableZ is the painter's sort key; larger is farther.
	SortableZ() float64
}

// ToOrigin expresses t relative to the world origin.
func ToOrigin(t Transform) Transform {
	return t.ToSpace(&Origin().Frame)
}

// CompareDepth orders transforms far to near for slices.SortStableFunc.
// Equal keys compare as 0 so a stable sort keeps their input order.
func CompareDepth(a, b Transform) int {
	za, zb := a.SortableZ(), b.SortableZ()
	switch {
	case za > zb:
		return -1
	case za == zb:
		return 0
	default:
		return 1
	}
}
