package models

import "github.com/taigrr/gravel3d/pkg/math3d"

// Sun is mesh geometry at infinity: it turns with the viewer but never
// moves closer, and always paints behind everything else.
type Sun struct {
	Frame
	Vertices []math3d.Vec3
	Faces    []Face
}

// NewSun creates a Sun after checking every face index.
func NewSun(rotation math3d.Vec3, vertices []math3d.Vec3, faces []Face) (*Sun, error) {
	if err := ValidateFaces(len(vertices), faces); err != nil {
		return nil, err
	}
	return &Sun{
		Frame:    NewFrame(math3d.Zero3(), rotation),
		Vertices: vertices,
		Faces:    faces,
	}, nil
}

// ToSpace implements Transform. Only the orientations of the sun and of
// space apply; translation has no effect at infinity.
func (s *Sun) ToSpace(space *Frame) Transform {
	return &Sun{
		Frame:    NewFrame(math3d.Zero3(), math3d.Zero3()),
		Vertices: s.ViewVertices(space),
		Faces:    s.Faces,
	}
}

// ViewVertices returns the sun's vertices as seen from space.
func (s *Sun) ViewVertices(space *Frame) []math3d.Vec3 {
	vertices := make([]math3d.Vec3, len(s.Vertices))
	for i, v := range s.Vertices {
		vertices[i] = s.ViewDirection(v, space)
	}
	return vertices
}

// ViewDirection re-expresses a sun-local direction as seen from space.
func (s *Sun) ViewDirection(v math3d.Vec3, space *Frame) math3d.Vec3 {
	return v.Rotate(s.Rotation).Orbit(space.Rotation)
}

// Triangles implements Transform.
func (s *Sun) Triangles() []Triangle {
	return facesToTriangles(s.Faces, s.Vertices)
}

// SortableZ implements Transform.
func (s *Sun) SortableZ() float64 {
	return MaxSortableZ
}
