package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img so its longer side is maxSize pixels, keeping the
// aspect ratio. Images already within maxSize are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	bounds := img.Bounds()
	if maxSize == 0 || (uint(bounds.Dx()) <= maxSize && uint(bounds.Dy()) <= maxSize) {
		return img
	}

	if bounds.Dx() >= bounds.Dy() {
		return resize.Resize(maxSize, 0, img, resize.Bilinear)
	}
	return resize.Resize(0, maxSize, img, resize.Bilinear)
}
