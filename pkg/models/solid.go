package models

import (
	"github.com/taigrr/gravel3d/pkg/math3d"
)

// Solid is a transform backed by a polygon mesh in its local frame.
type Solid struct {
	Frame
	Name     string
	Vertices []math3d.Vec3 // Object-local
	Faces    []Face
}

// NewSolid creates a Solid after checking every face index.
func NewSolid(position, rotation math3d.Vec3, vertices []math3d.Vec3, faces []Face) (*Solid, error) {
	if err := ValidateFaces(len(vertices), faces); err != nil {
		return nil, err
	}
	return &Solid{
		Frame:    NewFrame(position, rotation),
		Vertices: vertices,
		Faces:    faces,
	}, nil
}

// ToSpace implements Transform. Each vertex is rotated by the solid's own
// rotation, offset by its position relative to space, then orbited by
// space's rotation.
func (s *Solid) ToSpace(space *Frame) Transform {
	offset := s.Position.Sub(space.Position)

	vertices := make([]math3d.Vec3, len(s.Vertices))
	for i, v := range s.Vertices {
		vertices[i] = v.Rotate(s.Rotation).Add(offset).Orbit(space.Rotation)
	}

	position, rotation := s.relativeTo(space)
	return &Solid{
		Frame:    Frame{Position: position, Rotation: rotation, ScaleFactors: s.ScaleFactors},
		Name:     s.Name,
		Vertices: vertices,
		Faces:    s.Faces,
	}
}

// Triangles implements Transform.
func (s *Solid) Triangles() []Triangle {
	return facesToTriangles(s.Faces, s.Vertices)
}

// VertexCount returns the number of vertices.
func (s *Solid) VertexCount() int {
	return len(s.Vertices)
}

// TriangleCount returns the number of triangles the faces fan into.
func (s *Solid) TriangleCount() int {
	return countTriangles(s.Faces)
}

// Bounds returns the local axis-aligned bounding box.
func (s *Solid) Bounds() (lo, hi math3d.Vec3) {
	if len(s.Vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	lo, hi = s.Vertices[0], s.Vertices[0]
	for _, v := range s.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

func facesToTriangles(faces []Face, vertices []math3d.Vec3) []Triangle {
	tris := make([]Triangle, 0, countTriangles(faces))
	for _, f := range faces {
		tris = append(tris, f.Triangles(vertices)...)
	}
	return tris
}

func countTriangles(faces []Face) int {
	n := 0
	for _, f := range faces {
		n += f.TriangleCount()
	}
	return n
}
