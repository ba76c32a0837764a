package render

import (
	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
)

// Clip cuts a camera-space triangle against the near plane z = ClippingPlane.
//
// A triangle entirely in front is returned unchanged and one entirely behind
// yields nothing. With two vertices behind, both are pulled onto the plane
// along their edge to the remaining vertex. With one behind, the resulting
// quadrilateral is returned as two triangles. Every piece keeps t's albedo,
// shader and double-sidedness.
func (c *Camera) Clip(t models.Triangle) []models.Triangle {
	pieces, _ := c.clip(t)
	return pieces
}

func (c *Camera) clip(t models.Triangle) ([]models.Triangle, int) {
	plane := c.ClippingPlane
	v := t.Vertices

	var behind [3]bool
	count := 0
	for i := range v {
		if v[i].Z < plane {
			behind[i] = true
			count++
		}
	}

	switch count {
	case 0:
		return []models.Triangle{t}, 0
	case 3:
		return nil, 3
	case 2:
		var front math3d.Vec3
		for i := range v {
			if !behind[i] {
				front = v[i]
				break
			}
		}
		var out [3]math3d.Vec3
		for i := range v {
			if behind[i] {
				out[i] = intersect(front, v[i], plane)
			} else {
				out[i] = v[i]
			}
		}
		return []models.Triangle{t.WithVertices(out[0], out[1], out[2])}, 2
	}

	i := 0
	for !behind[i] {
		i++
	}
	clipped := v[i]
	before := v[(i+2)%3]
	after := v[(i+1)%3]

	p1 := intersect(before, clipped, plane)
	p2 := intersect(after, clipped, plane)

	return []models.Triangle{
		t.WithVertices(before, p1, p2),
		t.WithVertices(p2, after, before),
	}, 1
}

// intersect returns the point where the segment from a (in front) to b
// (behind) crosses z = plane.
func intersect(a, b math3d.Vec3, plane float64) math3d.Vec3 {
	s := (plane - a.Z) / (b.Z - a.Z)
	return b.Sub(a).Scale(s).Add(a)
}
