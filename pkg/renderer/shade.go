package renderer

import (
	"fmt"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// Mode selects how a hit and its occlusion coefficient become a color
type Mode string

const (
	// ModeAONormal tints the occlusion intensity by the absolute normal
	ModeAONormal Mode = "ao-normal"
	// ModeAO writes the occlusion intensity to all three channels
	ModeAO Mode = "ao"
	// ModeNormal shows absolute normals and skips occlusion sampling
	ModeNormal Mode = "normal"
)

// ParseMode converts a user supplied name into a Mode
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeAONormal, ModeAO, ModeNormal:
		return Mode(name), nil
	case "":
		return ModeAONormal, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s, %s or %s)", ErrInvalidMode, name, ModeAONormal, ModeAO, ModeNormal)
	}
}

// needsOcclusion reports whether the mode uses occlusion coefficients
func (m Mode) needsOcclusion() bool {
	return m != ModeNormal
}

// ShadePixel converts a hit and its occlusion coefficient to an RGB triple.
// Misses are black.
func ShadePixel(hit core.Hit, occlusion float64, mode Mode) (r, g, b uint8) {
	if hit.IsMiss() {
		return 0, 0, 0
	}

	intensity := 255.0 * (1.0 - occlusion)

	switch mode {
	case ModeAO:
		v := toByte(intensity)
		return v, v, v
	case ModeNormal:
		intensity = 255.0
	}

	n := hit.Normal.Abs()
	return toByte(n.X * intensity), toByte(n.Y * intensity), toByte(n.Z * intensity)
}

// Shade converts parallel slices of hits and occlusion coefficients into a
// flat RGB buffer in the same order
func Shade(hits []core.Hit, coefficients []float64, mode Mode) []byte {
	pix := make([]byte, 3*len(hits))
	for i, hit := range hits {
		pix[3*i], pix[3*i+1], pix[3*i+2] = ShadePixel(hit, coefficients[i], mode)
	}
	return pix
}

// toByte truncates a channel value, clamping it to [0, 255] first
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
