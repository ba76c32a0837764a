// Package scenery builds ready-made scene content: cubes, a sun that
// lights the world and turns with the day, the default scene and scenes
// described in YAML files.
package scenery

import (
	"image/color"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// CubeColors names the albedo of each side of a cube. Front is the side
// facing -z.
type CubeColors struct {
	Front, Back, Top, Bottom, Left, Right color.RGBA
}

// Uniform paints every side of a cube the same color.
func Uniform(c color.RGBA) CubeColors {
	return CubeColors{c, c, c, c, c, c}
}

// NewCube creates an axis-aligned cube centered on position whose
// vertices sit halfExtent from the center on every axis.
func NewCube(colors CubeColors, shader shading.Shader, position math3d.Vec3, halfExtent float64) *models.Solid {
	s := halfExtent
	vertices := []math3d.Vec3{
		math3d.V3(s, s, s),
		math3d.V3(s, s, -s),
		math3d.V3(s, -s, s),
		math3d.V3(s, -s, -s),
		math3d.V3(-s, s, s),
		math3d.V3(-s, s, -s),
		math3d.V3(-s, -s, s),
		math3d.V3(-s, -s, -s),
	}
	faces := []models.Face{
		models.NewFace([]int{0, 1, 3, 2}, colors.Left, shader),
		models.NewFace([]int{0, 4, 5, 1}, colors.Top, shader),
		models.NewFace([]int{1, 5, 7, 3}, colors.Front, shader),
		models.NewFace([]int{4, 6, 7, 5}, colors.Right, shader),
		models.NewFace([]int{2, 3, 7, 6}, colors.Bottom, shader),
		models.NewFace([]int{0, 2, 6, 4}, colors.Back, shader),
	}

	// Indices are fixed above and always valid.
	cube, err := models.NewSolid(position, math3d.Zero3(), vertices, faces)
	if err != nil {
		panic(err)
	}
	cube.Name = "cube"
	return cube
}
