package geometry

import (
	"image"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// PerspectiveCamera generates one primary ray per pixel through a sensor
// of width x height world units placed far units in front of the eye
type PerspectiveCamera struct {
	frame  core.OrthonormalBasis
	eye    core.Vec3
	width  float64
	height float64
	far    float64
}

// NewPerspectiveCamera creates a camera at eye looking towards lookAt
func NewPerspectiveCamera(eye, lookAt, up core.Vec3, width, height, far float64) *PerspectiveCamera {
	forward := lookAt.Subtract(eye)

	return &PerspectiveCamera{
		frame:  core.NewBasisFromVW(up, forward),
		eye:    eye,
		width:  width,
		height: height,
		far:    far,
	}
}

// Frame returns the camera's view basis
func (c *PerspectiveCamera) Frame() core.OrthonormalBasis {
	return c.frame
}

// Eye returns the camera position
func (c *PerspectiveCamera) Eye() core.Vec3 {
	return c.eye
}

// RayAt returns the ray through pixel (x, y) of a screenWidth x screenHeight
// raster. Both dimensions must be at least 2.
func (c *PerspectiveCamera) RayAt(x, y, screenWidth, screenHeight int) core.Ray {
	xCamera := (float64(x)/float64(screenWidth-1) - 0.5) * c.width
	yCamera := (float64(y)/float64(screenHeight-1) - 0.5) * c.height
	direction := c.frame.Eval(xCamera, yCamera, c.far)

	return core.NewRay(c.eye, direction)
}

// GenerateRays returns one ray per pixel in row-major order, row 0 first
func (c *PerspectiveCamera) GenerateRays(screenWidth, screenHeight int) []core.Ray {
	return c.GenerateRaysBounds(image.Rect(0, 0, screenWidth, screenHeight), screenWidth, screenHeight)
}

// GenerateRaysBounds returns the rays for the pixels inside bounds, in the
// same row-major order GenerateRays would emit them
func (c *PerspectiveCamera) GenerateRaysBounds(bounds image.Rectangle, screenWidth, screenHeight int) []core.Ray {
	rays := make([]core.Ray, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rays = append(rays, c.RayAt(x, y, screenWidth, screenHeight))
		}
	}

	return rays
}
