package output

import (
	"image"
	"testing"
)

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		maxSize  uint
		expected image.Point
	}{
		{"landscape", 200, 100, 50, image.Pt(50, 25)},
		{"portrait", 100, 200, 50, image.Pt(25, 50)},
		{"already small", 40, 30, 50, image.Pt(40, 30)},
		{"disabled", 200, 100, 0, image.Pt(200, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			thumb := Thumbnail(img, tt.maxSize)
			if got := thumb.Bounds().Size(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
