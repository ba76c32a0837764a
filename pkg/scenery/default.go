package scenery

import (
	"image/color"
	"time"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/render"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// Defaults of the built-in scene.
const (
	SunDepth  = 20
	DayLength = 100 * time.Second
)

// Content is everything needed to build a scene.
type Content struct {
	Members []models.Transform
	Sky     color.RGBA

	// Camera is the initial placement of the scene camera.
	Camera models.Frame
}

// Sun returns the first CelestialBody among the members, if any.
func (c *Content) Sun() *CelestialBody {
	for _, m := range c.Members {
		if body, ok := m.(*CelestialBody); ok {
			return body
		}
	}
	return nil
}

// Default returns the built-in scene: a green cube five units ahead of the
// camera, a ground plane one unit below and a sun setting over a sky-blue
// background.
func Default() *Content {
	cube := NewCube(Uniform(render.ColorGreen), shading.NewNormalShader(1), math3d.V3(0, 0, 5), 1)

	ground := models.NewPlane(
		math3d.Up(), -1,
		render.ColorYellowGreen,
		shading.NewFixedNormalShader(1, math3d.Up()),
	)

	vertices, faces := Hexagram(SunDepth, render.ColorYellow, shading.NewNormalShader(0))
	sun, err := NewCelestialBody(vertices, faces, math3d.Zero3(), DayLength, math3d.V3(0, 0, -1), render.ColorWhite)
	if err != nil {
		panic(err)
	}

	return &Content{
		Members: []models.Transform{cube, ground, sun},
		Sky:     render.ColorSkyBlue,
		Camera:  models.NewFrame(math3d.Zero3(), math3d.Zero3()),
	}
}
