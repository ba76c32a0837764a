package models

import (
	"image/color"
	"math"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// Plane is an infinite plane, synthesized into a single double-sided
// triangle at render time.
type Plane struct {
	Frame
	Normal math3d.Vec3
	Albedo color.RGBA
	Shader shading.FixedNormalShader
}

// NewPlane creates a Plane at the given height.
func NewPlane(normal math3d.Vec3, height float64, albedo color.RGBA, shader shading.FixedNormalShader) *Plane {
	return &Plane{
		Frame:  NewFrame(math3d.V3(0, height, 0), math3d.Zero3()),
		Normal: normal,
		Albedo: albedo,
		Shader: shader,
	}
}

// Height returns the plane's offset along world y.
func (p *Plane) Height() float64 {
	return p.Position.Y
}

// ToSpace implements Transform. The returned plane carries its own copy of
// the shader, re-aimed at the transformed normal.
func (p *Plane) ToSpace(space *Frame) Transform {
	normal := p.Normal.Rotate(p.Rotation).Orbit(space.Rotation)
	return NewPlane(normal, p.Position.Y-space.Position.Y, p.Albedo, p.Shader.WithNormal(normal))
}

// Triangles implements Transform. One vertex sits directly below (or
// above) the viewer; the other two straddle the normal turned a quarter
// turn about x.
func (p *Plane) Triangles() []Triangle {
	tangent := p.Normal.Rotate(math3d.V3(math.Pi/2, 0, 0))
	return []Triangle{{
		Vertices: [3]math3d.Vec3{
			math3d.V3(0, p.Position.Y, 0),
			tangent.Add(math3d.V3(1, 0, 0)),
			tangent.Add(math3d.V3(-1, 0, 0)),
		},
		Albedo:      p.Albedo,
		Shader:      p.Shader,
		DoubleSided: true,
	}}
}

// SortableZ implements Transform. Planes paint just in front of suns.
func (p *Plane) SortableZ() float64 {
	return MaxSortableZ - 1
}
