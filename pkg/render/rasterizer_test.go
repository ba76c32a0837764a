package render

import (
	"image/color"
	"math"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/taigrr/gravel3d/pkg/math3d"
)

func countColor(fb *Framebuffer, c color.RGBA) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestEdgeCoeffs(t *testing.T) {
	A, B, C := edgeCoeffs(0, 0, 10, 0)
	tests := []struct {
		name string
		x, y float64
		sign int
	}{
		{"below edge", 5, 1, 1},
		{"above edge", 5, -1, -1},
		{"on edge", 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := edgeFunc(A, B, C, tt.x, tt.y)
			switch {
			case tt.sign > 0 && got <= 0, tt.sign < 0 && got >= 0, tt.sign == 0 && got != 0:
				t.Errorf("edge(%v, %v) = %v, want sign %d", tt.x, tt.y, got, tt.sign)
			}
		})
	}
}

func TestFillTriangleWinding(t *testing.T) {
	tests := []struct {
		name   string
		points []math3d.Vec2
	}{
		{"positive area", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)}},
		{"negative area", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 10), math3d.V2(10, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(16, 16)
			fb.FillPolygon(tt.points, ColorRed)

			if fb.GetPixel(1, 1) != ColorRed {
				t.Error("pixel (1,1) should be inside")
			}
			if fb.GetPixel(9, 9) == ColorRed {
				t.Error("pixel (9,9) should be outside")
			}
			// Pixel centers with x+y <= 10 - 1: rows 0..9 contribute 10..1
			if got := countColor(fb, ColorRed); got != 55 {
				t.Errorf("filled %d pixels, want 55", got)
			}
		})
	}
}

func TestFillPolygonQuad(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.FillPolygon([]math3d.Vec2{
		math3d.V2(2, 2), math3d.V2(6, 2), math3d.V2(6, 6), math3d.V2(2, 6),
	}, ColorBlue)

	if got := countColor(fb, ColorBlue); got != 16 {
		t.Errorf("filled %d pixels, want 16", got)
	}
}

func TestFillPolygonDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []math3d.Vec2
	}{
		{"too few points", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(5, 5)}},
		{"zero area", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(5, 5), math3d.V2(9, 9)}},
		{"NaN", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(math.NaN(), 5), math3d.V2(9, 0)}},
		{"infinite", []math3d.Vec2{math3d.V2(0, 0), math3d.V2(math.Inf(1), 5), math3d.V2(9, 0)}},
		{"off screen", []math3d.Vec2{math3d.V2(-50, -50), math3d.V2(-40, -50), math3d.V2(-50, -40)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.FillPolygon(tt.points, ColorRed)
			if got := countColor(fb, ColorRed); got != 0 {
				t.Errorf("filled %d pixels, want 0", got)
			}
		})
	}
}

func TestFillPolygonHuge(t *testing.T) {
	fb := NewFramebuffer(20, 10)
	fb.FillPolygon([]math3d.Vec2{
		math3d.V2(-1e9, -1e9), math3d.V2(1e9, -1e9), math3d.V2(0, 1e9),
	}, ColorGreen)

	if got := countColor(fb, ColorGreen); got != 200 {
		t.Errorf("filled %d pixels, want the whole buffer", got)
	}
}

func TestFrameStatsLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	stats := FrameStats{Members: 3, Triangles: 14, Clipped: 1, Dropped: 2, Culled: 5, Drawn: 7}
	if err := stats.MarshalLogObject(enc); err != nil {
		t.Fatalf("MarshalLogObject: %v", err)
	}
	want := map[string]int{"members": 3, "triangles": 14, "clipped": 1, "dropped": 2, "culled": 5, "drawn": 7}
	for k, v := range want {
		if enc.Fields[k] != v {
			t.Errorf("%s = %v, want %d", k, enc.Fields[k], v)
		}
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	points := []math3d.Vec2{math3d.V2(10, 10), math3d.V2(300, 40), math3d.V2(120, 190)}

	for b.Loop() {
		fb.FillPolygon(points, ColorRed)
	}
}
