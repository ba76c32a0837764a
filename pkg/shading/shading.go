// Package shading turns a triangle normal, a light ray and a base color into
// a fill color.
package shading

import (
	"image/color"
	"math"

	"github.com/taigrr/gravel3d/pkg/math3d"
)

// Black is the color a fully shaded surface fades toward.
var Black = color.RGBA{A: 255}

// LightRay is the light arriving at a surface.
type LightRay struct {
	Direction math3d.Vec3
	Color     color.RGBA
}

// Environment carries the scene-wide lighting state a shader needs.
type Environment struct {
	// Ambient is added to the diffuse term before darkening.
	Ambient float64
}

// Shader computes the lit color of a triangle.
type Shader interface {
	Shade(normal math3d.Vec3, ray LightRay, albedo color.RGBA, env Environment) color.RGBA
}

// NormalShader darkens a surface by how far its normal faces away from the light.
type NormalShader struct {
	// Weight scales the darkening: 0 always returns the albedo,
	// 1 spans the full range from black to albedo.
	Weight float64
}

// NewNormalShader creates a NormalShader with the given weight.
func NewNormalShader(weight float64) NormalShader {
	return NormalShader{Weight: weight}
}

// Shade implements Shader.
func (s NormalShader) Shade(normal math3d.Vec3, ray LightRay, albedo color.RGBA, env Environment) color.RGBA {
	facing := Clamp01(normal.Dot(ray.Direction)) + env.Ambient
	return darken(albedo, s.Weight, facing)
}

// FixedNormalShader shades with a stored normal instead of the triangle's,
// for analytic surfaces whose triangles carry no meaningful winding.
type FixedNormalShader struct {
	Weight float64
	Normal math3d.Vec3
}

// NewFixedNormalShader creates a FixedNormalShader.
func NewFixedNormalShader(weight float64, normal math3d.Vec3) FixedNormalShader {
	return FixedNormalShader{Weight: weight, Normal: normal}
}

// WithNormal returns a copy of s using normal.
func (s FixedNormalShader) WithNormal(normal math3d.Vec3) FixedNormalShader {
	s.Normal = normal
	return s
}

// Shade implements Shader. The triangle normal is ignored.
func (s FixedNormalShader) Shade(_ math3d.Vec3, ray LightRay, albedo color.RGBA, env Environment) color.RGBA {
	facing := Clamp01(s.Normal.Negate().Dot(ray.Direction)) + env.Ambient
	return darken(albedo, s.Weight, facing)
}

func darken(albedo color.RGBA, weight, facing float64) color.RGBA {
	return LerpColor(albedo, Black, weight*(1-facing))
}

// LerpColor interpolates each channel of a toward b by t, clamped to [0, 1].
// Alpha is taken from a.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: a.A,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
