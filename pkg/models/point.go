package models

import "github.com/taigrr/gravel3d/pkg/math3d"

// Point is a frame without geometry, such as a camera.
type Point struct {
	Frame
}

// NewPoint creates a Point.
func NewPoint(position, rotation math3d.Vec3) *Point {
	return &Point{Frame: NewFrame(position, rotation)}
}

// Origin returns a new Point at the world origin.
func Origin() *Point {
	return NewPoint(math3d.Zero3(), math3d.Zero3())
}

// ToSpace implements Transform.
func (p *Point) ToSpace(space *Frame) Transform {
	position, rotation := p.relativeTo(space)
	return NewPoint(position, rotation)
}

// Triangles implements Transform. A Point has none.
func (p *Point) Triangles() []Triangle {
	return nil
}
