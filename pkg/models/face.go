package models

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/shading"
)

var (
	// ErrFaceTooSmall is returned for faces with fewer than three indices.
	ErrFaceTooSmall = errors.New("face needs at least 3 vertex indices")
	// ErrFaceIndex is returned for faces indexing past the vertex list.
	ErrFaceIndex = errors.New("face vertex index out of range")
)

// Face is a polygon over the vertex list of its owning transform.
type Face struct {
	Indices []int // Indices into the owner's vertices
	Albedo  color.RGBA
	Shader  shading.Shader
}

// NewFace creates a Face.
func NewFace(indices []int, albedo color.RGBA, shader shading.Shader) Face {
	return Face{Indices: indices, Albedo: albedo, Shader: shader}
}

// TriangleCount returns the number of triangles the face fans into.
func (f Face) TriangleCount() int {
	return max(len(f.Indices)-2, 0)
}

// Triangles fans the face from its first index over vertices.
// Indices must have been checked with ValidateFaces.
func (f Face) Triangles(vertices []math3d.Vec3) []Triangle {
	tris := make([]Triangle, 0, f.TriangleCount())
	for i := 1; i < len(f.Indices)-1; i++ {
		tris = append(tris, Triangle{
			Vertices: [3]math3d.Vec3{
				vertices[f.Indices[0]],
				vertices[f.Indices[i]],
				vertices[f.Indices[i+1]],
			},
			Albedo: f.Albedo,
			Shader: f.Shader,
		})
	}
	return tris
}

// ValidateFaces checks every face against a vertex list of length n.
func ValidateFaces(n int, faces []Face) error {
	for i, f := range faces {
		if len(f.Indices) < 3 {
			return fmt.Errorf("face %d: %w", i, ErrFaceTooSmall)
		}
		for _, idx := range f.Indices {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d of %d vertices: %w", i, idx, n, ErrFaceIndex)
			}
		}
	}
	return nil
}

// Triangle is a render-time triangle in world or camera space.
type Triangle struct {
	Vertices    [3]math3d.Vec3
	Albedo      color.RGBA
	Shader      shading.Shader
	DoubleSided bool // Skip back-face culling
}

// Normal returns normalize((v0-v1) × (v0-v2)).
func (t Triangle) Normal() math3d.Vec3 {
	v := t.Vertices
	return v[0].Sub(v[1]).Cross(v[0].Sub(v[2])).Normalize()
}

// WithVertices returns a triangle with new vertices and t's surface attributes.
func (t Triangle) WithVertices(v0, v1, v2 math3d.Vec3) Triangle {
	t.Vertices = [3]math3d.Vec3{v0, v1, v2}
	return t
}

// Color returns the lit color of the triangle. Only the first light is
// used; with no lights, or no shader, the albedo is returned as-is.
func (t Triangle) Color(lights []LightSource, env shading.Environment) color.RGBA {
	if len(lights) == 0 || t.Shader == nil {
		return t.Albedo
	}
	return t.Shader.Shade(t.Normal(), lights[0].LightRay(t), t.Albedo, env)
}

// LightSource is implemented by scene members that emit light.
type LightSource interface {
	LightRay(t Triangle) shading.LightRay
}
