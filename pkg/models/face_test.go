package models

import (
	"image/color"
	"testing"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/shading"
)

type fixedLight struct {
	ray   shading.LightRay
	calls int
}

func (l *fixedLight) LightRay(Triangle) shading.LightRay {
	l.calls++
	return l.ray
}

func TestFaceFan(t *testing.T) {
	vertices := []math3d.Vec3{
		math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 1, 0),
		math3d.V3(1, 2, 0), math3d.V3(0, 1, 0),
	}
	tests := []struct {
		name    string
		indices []int
		want    int
	}{
		{"triangle", []int{0, 1, 2}, 1},
		{"quad", []int{0, 1, 2, 3}, 2},
		{"pentagon", []int{0, 1, 2, 3, 4}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFace(tt.indices, color.RGBA{R: 1, G: 2, B: 3, A: 255}, nil)
			tris := f.Triangles(vertices)
			if len(tris) != tt.want || f.TriangleCount() != tt.want {
				t.Fatalf("got %d triangles (count %d), want %d", len(tris), f.TriangleCount(), tt.want)
			}
			for i, tri := range tris {
				if tri.Vertices[0] != vertices[tt.indices[0]] {
					t.Errorf("triangle %d does not start at the fan pivot", i)
				}
				if tri.Vertices[1] != vertices[tt.indices[i+1]] || tri.Vertices[2] != vertices[tt.indices[i+2]] {
					t.Errorf("triangle %d has wrong outer vertices", i)
				}
				if tri.Albedo != f.Albedo {
					t.Errorf("triangle %d lost albedo", i)
				}
			}
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle{Vertices: [3]math3d.Vec3{
		math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1),
	}}
	// (v0-v1) × (v0-v2) = (-1,0,0) × (0,-1,0) = (0,0,1)
	if n := tri.Normal(); !n.ApproxEqual(math3d.V3(0, 0, 1), eps) {
		t.Errorf("Normal = %v, want (0, 0, 1)", n)
	}
}

func TestTriangleColor(t *testing.T) {
	green := color.RGBA{G: 200, B: 100, A: 255}
	tri := Triangle{
		Vertices: [3]math3d.Vec3{math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1)},
		Albedo:   green,
		Shader:   shading.NewNormalShader(1),
	}
	env := shading.Environment{Ambient: 0.25}

	t.Run("no lights", func(t *testing.T) {
		if got := tri.Color(nil, env); got != green {
			t.Errorf("got %v, want albedo %v", got, green)
		}
	})

	t.Run("no shader", func(t *testing.T) {
		bare := tri
		bare.Shader = nil
		light := &fixedLight{}
		if got := bare.Color([]LightSource{light}, env); got != green {
			t.Errorf("got %v, want albedo %v", got, green)
		}
	})

	t.Run("first light only", func(t *testing.T) {
		first := &fixedLight{ray: shading.LightRay{Direction: math3d.V3(0, 0, 1), Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}}
		second := &fixedLight{ray: shading.LightRay{Direction: math3d.V3(0, 0, -1), Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}}

		got := tri.Color([]LightSource{first, second}, env)
		if got != green {
			t.Errorf("fully lit triangle = %v, want %v", got, green)
		}
		if first.calls != 1 || second.calls != 0 {
			t.Errorf("light calls = %d, %d; want 1, 0", first.calls, second.calls)
		}
	})
}
