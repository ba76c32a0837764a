package render

import (
	"image/color"
	"slices"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// DefaultClippingPlane is the camera-space z of the near plane.
const DefaultClippingPlane = 0.01

// Camera projects scene members onto a Surface using the painter's
// algorithm.
type Camera struct {
	// Frame is the camera's placement. It is usually also a scene member,
	// so movement components can drive it.
	Frame *models.Point

	// Projection parameters
	FocalLength   float64
	ScreenScale   math3d.Vec2 // (W, -W): y grows downward on screen
	ScreenOffset  math3d.Vec2 // Added after scaling
	ClippingPlane float64

	// Outline, when set, strokes the edges of every drawn triangle on
	// surfaces that implement Stroker.
	Outline *color.RGBA
}

// NewCamera creates a camera at the origin for a surface width pixels wide.
func NewCamera(width int, focal float64) *Camera {
	return &Camera{
		Frame:         models.Origin(),
		FocalLength:   focal,
		ScreenScale:   math3d.V2(float64(width), -float64(width)),
		ClippingPlane: DefaultClippingPlane,
	}
}

// Resize rescales the projection for a new surface width.
func (c *Camera) Resize(width int) {
	c.ScreenScale = math3d.V2(float64(width), -float64(width))
}

// Fit rescales the projection for a width x height surface and shifts it
// so the optical axis lands on the surface center.
func (c *Camera) Fit(width, height int) {
	c.Resize(width)
	c.ScreenOffset = math3d.V2(0, float64(height-width)/2)
}

// Project maps a camera-space point to screen coordinates. Both axes are
// scaled by the surface width, so (0, 0, f) lands at (W/2, W/2).
func (c *Camera) Project(v math3d.Vec3) math3d.Vec2 {
	p := math3d.V2(c.FocalLength*v.X/v.Z, c.FocalLength*v.Y/v.Z)
	p = p.Add(math3d.V2(0.5, -0.5))
	return p.Mul(c.ScreenScale).Add(c.ScreenOffset)
}

// ProjectTriangle projects the three vertices of t.
func (c *Camera) ProjectTriangle(t models.Triangle) []math3d.Vec2 {
	return []math3d.Vec2{
		c.Project(t.Vertices[0]),
		c.Project(t.Vertices[1]),
		c.Project(t.Vertices[2]),
	}
}

// Visible reports whether a camera-space triangle faces the camera.
func Visible(t models.Triangle) bool {
	return t.DoubleSided || t.Normal().Dot(t.Vertices[0]) >= 0
}

// Render draws members as seen from the camera. Members are converted into
// camera space, sorted far to near and painted in that order; only the
// first light source in sorted order shades triangles.
func (c *Camera) Render(members []models.Transform, surface Surface, env shading.Environment) FrameStats {
	var stats FrameStats

	space := c.Frame.Base()
	local := make([]models.Transform, 0, len(members))
	for _, m := range members {
		local = append(local, m.ToSpace(space))
	}
	slices.SortStableFunc(local, models.CompareDepth)
	stats.Members = len(local)

	var lights []models.LightSource
	for _, m := range local {
		if l, ok := m.(models.LightSource); ok {
			lights = append(lights, l)
		}
	}

	stroker, canStroke := surface.(Stroker)

	for _, m := range local {
		for _, tri := range m.Triangles() {
			stats.Triangles++

			pieces, clipped := c.clip(tri)
			switch {
			case clipped == 3:
				stats.Dropped++
				continue
			case clipped > 0:
				stats.Clipped++
			}

			for _, piece := range pieces {
				if !Visible(piece) {
					stats.Culled++
					continue
				}
				points := c.ProjectTriangle(piece)
				surface.FillPolygon(points, piece.Color(lights, env))
				if c.Outline != nil && canStroke {
					stroker.StrokePolygon(points, *c.Outline)
				}
				stats.Drawn++
			}
		}
	}

	return stats
}
