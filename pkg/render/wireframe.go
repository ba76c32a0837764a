package render

import (
	"image/color"
	"math"

	"github.com/taigrr/gravel3d/pkg/math3d"
)

// StrokePolygon draws the closed outline of a polygon. Edges are clipped to
// the buffer first, so far off-screen vertices cost nothing.
func (fb *Framebuffer) StrokePolygon(points []math3d.Vec2, c color.RGBA) {
	if len(points) < 2 {
		return
	}
	for i, a := range points {
		b := points[(i+1)%len(points)]
		fb.DrawLineF(a, b, c)
	}
}

// DrawLineF draws a line between two points in floating-point screen
// coordinates.
func (fb *Framebuffer) DrawLineF(a, b math3d.Vec2, c color.RGBA) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	a, b, ok := fb.clipSegment(a, b)
	if !ok {
		return
	}
	fb.DrawLine(
		int(math.Round(a.X)), int(math.Round(a.Y)),
		int(math.Round(b.X)), int(math.Round(b.Y)),
		c,
	)
}

// clipSegment clips a segment to the buffer rectangle (Liang-Barsky).
func (fb *Framebuffer) clipSegment(a, b math3d.Vec2) (math3d.Vec2, math3d.Vec2, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0

	xmax := float64(fb.Width - 1)
	ymax := float64(fb.Height - 1)
	checks := [4][2]float64{
		{-d.X, a.X},
		{d.X, xmax - a.X},
		{-d.Y, a.Y},
		{d.Y, ymax - a.Y},
	}
	for _, pq := range checks {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}

	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}
