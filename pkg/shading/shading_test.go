package shading

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/gravel3d/pkg/math3d"
)

var green = color.RGBA{G: 200, B: 100, A: 255}

func TestNormalShaderWeightZero(t *testing.T) {
	s := NewNormalShader(0)
	env := Environment{Ambient: 0.25}

	normals := []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(0, 0, -1),
		math3d.V3(1, 0, 0),
		math3d.Zero3().Normalize(), // NaN
	}
	for _, n := range normals {
		ray := LightRay{Direction: math3d.V3(0, 0, -1)}
		if got := s.Shade(n, ray, green, env); got != green {
			t.Errorf("weight 0 with normal %v = %v, want albedo %v", n, got, green)
		}
	}
}

func TestNormalShader(t *testing.T) {
	s := NewNormalShader(1)

	tests := []struct {
		name    string
		normal  math3d.Vec3
		light   math3d.Vec3
		ambient float64
		want    color.RGBA
	}{
		{"facing light", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), 0, green},
		{"facing away no ambient", math3d.V3(0, 0, -1), math3d.V3(0, 0, 1), 0, Black},
		{"facing away quarter ambient", math3d.V3(0, 0, -1), math3d.V3(0, 0, 1), 0.25, color.RGBA{G: 50, B: 25, A: 255}},
		{"half lit", math3d.V3(0, 0, 1), math3d.V3(0, 0.5*math.Sqrt(3), 0.5), 0, color.RGBA{G: 100, B: 50, A: 255}},
		{"over-lit stays albedo", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), 0.25, green},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Shade(tc.normal, LightRay{Direction: tc.light}, green, Environment{Ambient: tc.ambient})
			if got != tc.want {
				t.Errorf("Shade = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFixedNormalShaderIgnoresTriangleNormal(t *testing.T) {
	s := NewFixedNormalShader(1, math3d.V3(0, 1, 0))
	ray := LightRay{Direction: math3d.V3(0, -1, 0)}

	a := s.Shade(math3d.V3(0, 0, 1), ray, green, Environment{})
	b := s.Shade(math3d.V3(1, 0, 0), ray, green, Environment{})
	if a != b {
		t.Errorf("results differ by triangle normal: %v vs %v", a, b)
	}
	// Light travelling down onto an up-facing surface is full strength.
	if a != green {
		t.Errorf("Shade = %v, want %v", a, green)
	}

	// Light from below leaves only the ambient term.
	got := s.Shade(math3d.Zero3(), LightRay{Direction: math3d.V3(0, 1, 0)}, green, Environment{Ambient: 0.5})
	if want := (color.RGBA{G: 100, B: 50, A: 255}); got != want {
		t.Errorf("Shade from below = %v, want %v", got, want)
	}
}

func TestFixedNormalShaderWithNormal(t *testing.T) {
	s := NewFixedNormalShader(0.5, math3d.V3(0, 1, 0))
	moved := s.WithNormal(math3d.V3(1, 0, 0))

	if s.Normal != math3d.V3(0, 1, 0) {
		t.Errorf("original normal changed to %v", s.Normal)
	}
	if moved.Normal != math3d.V3(1, 0, 0) || moved.Weight != 0.5 {
		t.Errorf("WithNormal = %+v", moved)
	}
}

func TestLerpColor(t *testing.T) {
	a := color.RGBA{R: 200, G: 100, A: 128}
	b := color.RGBA{G: 200, B: 255, A: 255}

	tests := []struct {
		t    float64
		want color.RGBA
	}{
		{0, a},
		{1, color.RGBA{G: 200, B: 255, A: 128}},
		{0.5, color.RGBA{R: 100, G: 150, B: 128, A: 128}},
		{-3, a},
		{7, color.RGBA{G: 200, B: 255, A: 128}},
	}
	for _, tc := range tests {
		if got := LerpColor(a, b, tc.t); got != tc.want {
			t.Errorf("LerpColor(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1}, {math.NaN(), 0},
	}
	for _, tc := range tests {
		if got := Clamp01(tc.in); got != tc.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
