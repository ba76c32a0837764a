// Package render turns scene members into pixels: camera-space conversion,
// near-plane clipping, projection and painter's-order filling.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is the canvas the camera paints on. The terminal shows it at
// double vertical resolution using half-block characters (▀▄); the window
// front end and PNG snapshots copy it out as RGBA bytes.
type Framebuffer struct {
	Width  int
	Height int          // Twice the terminal rows when drawn with half-blocks
	Pixels []color.RGBA // Row-major
}

// NewFramebuffer creates a width x height framebuffer of transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Clear fills the framebuffer with c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// Resize reallocates the framebuffer when its dimensions change. The
// contents are discarded.
func (fb *Framebuffer) Resize(width, height int) {
	if fb.Pixels != nil && width == fb.Width && height == fb.Height {
		return
	}
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]color.RGBA, width*height)
}

// index returns the offset of (x, y) in Pixels.
func (fb *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, false
	}
	return y*fb.Width + x, true
}

// SetPixel sets the pixel at (x, y). Writes outside the buffer are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if i, ok := fb.index(x, y); ok {
		fb.Pixels[i] = c
	}
}

// GetPixel returns the pixel at (x, y), or transparent black outside the
// buffer.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if i, ok := fb.index(x, y); ok {
		return fb.Pixels[i]
	}
	return color.RGBA{}
}

// DrawLine draws a line from (x0, y0) to (x1, y1), both ends included,
// with Bresenham's integer error stepping.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx, sx := span(x0, x1)
	dy, sy := span(y0, y1)
	dy = -dy
	e := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// span returns the distance from a to b and the unit step toward b.
func span(a, b int) (dist, step int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}

// CopyRGBA writes the pixels into dst as consecutive R, G, B, A bytes,
// the layout of image.RGBA.Pix. dst must hold 4*Width*Height bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, c := range fb.Pixels {
		p := dst[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
}

// ToImage copies the framebuffer into a new image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// SavePNG writes the framebuffer to path as a PNG.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
