package scene

import (
	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// NewSphereGridScene creates a 19x19 carpet of unit spheres receding from an
// elevated camera. Neighbouring spheres touch, so the crevices between them
// show strong occlusion even with a single sample per pixel.
func NewSphereGridScene() *Description {
	desc := &Description{
		Name: "spheregrid",
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 10, 8),
			LookAt: core.NewVec3(0, 0, -9),
			Up:     core.NewVec3(0, 1, 0),
			Width:  3.0, // Height follows the raster aspect ratio
			Far:    3.0,
		},
		AOSamples: 1,
	}

	for x := -9; x <= 9; x++ {
		for z := -18; z <= 0; z++ {
			desc.Spheres = append(desc.Spheres, SphereConfig{
				Center: core.NewVec3(float64(x)*2.0, 0, float64(z)*2.0),
				Radius: 1.0,
			})
		}
	}

	return desc
}
