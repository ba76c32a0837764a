package scenery

import (
	"image/color"
	"math"
	"time"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/motion"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// CelestialBody is a sun that also lights the scene. It turns about the
// x axis once per DayLength, carrying its light direction with it.
type CelestialBody struct {
	models.Sun

	LightDirection math3d.Vec3
	LightColor     color.RGBA
	DayLength      time.Duration

	movement *motion.Movement
}

// NewCelestialBody creates a CelestialBody. A non-positive dayLength
// leaves it standing still.
func NewCelestialBody(vertices []math3d.Vec3, faces []models.Face, rotation math3d.Vec3, dayLength time.Duration, lightDirection math3d.Vec3, lightColor color.RGBA) (*CelestialBody, error) {
	sun, err := models.NewSun(rotation, vertices, faces)
	if err != nil {
		return nil, err
	}

	body := &CelestialBody{
		Sun:            *sun,
		LightDirection: lightDirection,
		LightColor:     lightColor,
		DayLength:      dayLength,
	}
	body.movement = motion.New(&body.Frame, math3d.Mask3{})
	if dayLength > 0 {
		body.movement.AngularVelocity = math3d.V3(2*math.Pi/dayLength.Seconds(), 0, 0)
	}
	return body, nil
}

// Hexagram returns the vertices and two triangular faces of a six-pointed
// star of unit radius at the given depth.
func Hexagram(depth float64, albedo color.RGBA, shader shading.Shader) ([]math3d.Vec3, []models.Face) {
	h := math.Sqrt(3) / 2
	vertices := []math3d.Vec3{
		math3d.V3(0, 1, depth),
		math3d.V3(-h, -0.5, depth),
		math3d.V3(h, -0.5, depth),
		math3d.V3(h, 0.5, depth),
		math3d.V3(-h, 0.5, depth),
		math3d.V3(0, -1, depth),
	}
	faces := []models.Face{
		models.NewFace([]int{0, 1, 2}, albedo, shader),
		models.NewFace([]int{3, 4, 5}, albedo, shader),
	}
	return vertices, faces
}

// ToSpace implements models.Transform. The result carries the light
// direction as seen from space and does not move.
func (c *CelestialBody) ToSpace(space *models.Frame) models.Transform {
	sun := c.Sun.ToSpace(space).(*models.Sun)
	return &CelestialBody{
		Sun:            *sun,
		LightDirection: c.ViewDirection(c.LightDirection, space),
		LightColor:     c.LightColor,
		DayLength:      c.DayLength,
	}
}

// LightRay implements models.LightSource. Every triangle receives the same
// parallel ray.
func (c *CelestialBody) LightRay(models.Triangle) shading.LightRay {
	return shading.LightRay{Direction: c.LightDirection, Color: c.LightColor}
}

// Update turns the body by its angular velocity.
func (c *CelestialBody) Update(dt time.Duration) {
	if c.movement != nil {
		c.movement.Update(dt)
	}
}
