package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer into area of a terminal screen. Each cell
// shows two framebuffer rows: "▀" with the top pixel as foreground and the
// bottom pixel as background. The framebuffer height should be 2x the area
// height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Named colors used by the built-in scenery.
var (
	ColorBlack       = color.RGBA{A: 255}
	ColorWhite       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorRed         = color.RGBA{R: 255, A: 255}
	ColorGreen       = color.RGBA{G: 128, A: 255}
	ColorBlue        = color.RGBA{B: 255, A: 255}
	ColorYellow      = color.RGBA{R: 255, G: 255, A: 255}
	ColorOrange      = color.RGBA{R: 255, G: 165, A: 255}
	ColorPurple      = color.RGBA{R: 128, B: 128, A: 255}
	ColorGray        = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ColorSkyBlue     = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	ColorYellowGreen = color.RGBA{R: 154, G: 205, B: 50, A: 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
