package output

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/df07/go-ambient-occlusion/pkg/renderer"
)

// NewContext paints fb into a drawing context, one pixel per framebuffer
// pixel, rows in framebuffer order (row 0 at the top of the context)
func NewContext(fb *renderer.Framebuffer) *gg.Context {
	dc := gg.NewContext(fb.Width, fb.Height)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB(x, y)
			dc.SetRGB255(int(r), int(g), int(b))
			dc.SetPixel(x, y)
		}
	}
	return dc
}

// Upright returns fb as an image oriented for display. Framebuffer row 0
// is the bottom of the sensor, so rows are flipped.
func Upright(fb *renderer.Framebuffer) image.Image {
	return imaging.FlipV(NewContext(fb).Image())
}
