package render

import (
	"image/color"
	"math"

	"go.uber.org/zap/zapcore"

	"github.com/taigrr/gravel3d/pkg/math3d"
)

// Surface is anything the camera can paint on.
type Surface interface {
	// FillPolygon fills a convex polygon given in screen coordinates.
	FillPolygon(points []math3d.Vec2, c color.RGBA)
}

// Stroker is implemented by surfaces that can also draw outlines.
type Stroker interface {
	StrokePolygon(points []math3d.Vec2, c color.RGBA)
}

// FrameStats tracks what happened to the triangles of one rendered frame.
type FrameStats struct {
	Members   int // Transforms converted into camera space
	Triangles int // Triangles produced by those transforms
	Clipped   int // Triangles partially behind the near plane
	Dropped   int // Triangles entirely behind the near plane
	Culled    int // Clipped pieces facing away from the camera
	Drawn     int // Pieces filled on the surface
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s FrameStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("members", s.Members)
	enc.AddInt("triangles", s.Triangles)
	enc.AddInt("clipped", s.Clipped)
	enc.AddInt("dropped", s.Dropped)
	enc.AddInt("culled", s.Culled)
	enc.AddInt("drawn", s.Drawn)
	return nil
}

// edgeCoeffs computes the edge function coefficients for the edge from
// (x0, y0) to (x1, y1): edge(x, y) = A*x + B*y + C.
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// FillPolygon fills a convex polygon by fanning it into triangles.
// Polygons with non-finite points are skipped.
func (fb *Framebuffer) FillPolygon(points []math3d.Vec2, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	for _, p := range points {
		if !p.IsFinite() {
			return
		}
	}
	for i := 1; i < len(points)-1; i++ {
		fb.fillTriangle(points[0], points[i], points[i+1], c)
	}
}

// fillTriangle rasterizes a flat triangle with incremental edge functions.
// Pixel centers on an edge are filled. Either winding is accepted.
func (fb *Framebuffer) fillTriangle(v0, v1, v2 math3d.Vec2, c color.RGBA) {
	area2 := (v1.X-v0.X)*(v2.Y-v0.Y) - (v1.Y-v0.Y)*(v2.X-v0.X)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		v1, v2 = v2, v1
	}

	// Bounding box, clamped to the buffer before converting to int
	minX := math.Max(0, math.Floor(min(v0.X, v1.X, v2.X)))
	maxX := math.Min(float64(fb.Width-1), math.Ceil(max(v0.X, v1.X, v2.X)))
	minY := math.Max(0, math.Floor(min(v0.Y, v1.Y, v2.Y)))
	maxY := math.Min(float64(fb.Height-1), math.Ceil(max(v0.Y, v1.Y, v2.Y)))
	if minX > maxX || minY > maxY {
		return
	}
	x0, x1 := int(minX), int(maxX)
	y0, y1 := int(minY), int(maxY)

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(v1.X, v1.Y, v2.X, v2.Y)
	A1, B1, C1 := edgeCoeffs(v2.X, v2.Y, v0.X, v0.Y)
	A2, B2, C2 := edgeCoeffs(v0.X, v0.Y, v1.X, v1.Y)

	// Evaluate at the first pixel center, then step
	px := float64(x0) + 0.5
	py := float64(y0) + 0.5
	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	for y := y0; y <= y1; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]

		for x := x0; x <= x1; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}
