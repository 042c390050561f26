package renderer

// Framebuffer is a flat RGB byte buffer, three bytes per pixel, rows stored
// in ray generation order: row 0 is yscreen = 0
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 3*width*height),
	}
}

// offset returns the index of the red byte for pixel (x, y)
func (fb *Framebuffer) offset(x, y int) int {
	return 3 * (y*fb.Width + x)
}

// SetRGB writes one pixel
func (fb *Framebuffer) SetRGB(x, y int, r, g, b uint8) {
	i := fb.offset(x, y)
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
}

// RGB reads one pixel
func (fb *Framebuffer) RGB(x, y int) (r, g, b uint8) {
	i := fb.offset(x, y)
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}
