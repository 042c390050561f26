package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for output formats other than PNG, JPEG and BMP
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an image encoding supported for render output
type Format int

const (
	PNG Format = iota
	JPEG
	BMP
)

// jpegQuality is used for every JPEG encode
const jpegQuality = 95

// ParseFormat resolves a format name such as "png", "jpg" or "bmp"
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromFilename picks the format from the file extension
func FormatFromFilename(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return PNG, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	case imaging.BMP:
		return BMP, nil
	}
	return PNG, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	default:
		return "png"
	}
}

// Extension returns the file extension including the leading dot
func (f Format) Extension() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + f.String()
}

// ContentType returns the MIME type used for uploads and HTTP responses
func (f Format) ContentType() string {
	return "image/" + f.String()
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(format))
}

// Save writes img to path, choosing the format from the extension
func Save(path string, img image.Image) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}

	if format == PNG {
		if err := gg.SavePNG(path, img); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
