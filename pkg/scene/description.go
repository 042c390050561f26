package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/df07/go-ambient-occlusion/pkg/core"
	"github.com/df07/go-ambient-occlusion/pkg/geometry"
)

// CameraConfig describes a perspective camera. Vectors decode from JSON
// objects such as {"x": 0, "y": 1, "z": 0}.
type CameraConfig struct {
	Eye    core.Vec3 `json:"eye"`
	LookAt core.Vec3 `json:"lookAt"`
	Up     core.Vec3 `json:"up"`
	Width  float64   `json:"width"`            // Sensor width in world units
	Height float64   `json:"height,omitempty"` // Sensor height; 0 derives it from the raster aspect ratio
	Far    float64   `json:"far"`              // Distance from the eye to the sensor plane
}

// SphereConfig describes one sphere primitive
type SphereConfig struct {
	Center core.Vec3 `json:"center"`
	Radius float64   `json:"radius"`
}

// Description is a serializable scene: a camera, its spheres and a
// recommended number of ambient-occlusion samples
type Description struct {
	Name      string         `json:"name,omitempty"`
	Details   string         `json:"details,omitempty"` // Shown in scene listings
	Group     string         `json:"group,omitempty"`   // Listing group for scene files
	Camera    CameraConfig   `json:"camera"`
	Spheres   []SphereConfig `json:"spheres"`
	AOSamples int            `json:"aoSamples,omitempty"`
}

// LoadDescription reads a JSON scene description from disk
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = path
	}

	return &desc, nil
}

// Validate checks that every value is finite and the camera is well formed
func (d *Description) Validate() error {
	c := d.Camera
	if !c.Eye.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: non-finite eye, lookAt or up", ErrDegenerateCamera)
	}
	if c.LookAt.Subtract(c.Eye).Length() == 0 {
		return fmt.Errorf("%w: lookAt %v equals eye", ErrDegenerateCamera, c.LookAt)
	}
	if c.Up.Length() == 0 {
		return fmt.Errorf("%w: zero up vector", ErrDegenerateCamera)
	}
	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		return fmt.Errorf("%w: sensor width must be positive, got %g", ErrDegenerateCamera, c.Width)
	}
	if !(c.Height >= 0) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: sensor height must not be negative, got %g", ErrDegenerateCamera, c.Height)
	}
	if !(c.Far > 0) || math.IsInf(c.Far, 0) {
		return fmt.Errorf("%w: far distance must be positive, got %g", ErrDegenerateCamera, c.Far)
	}

	for i, s := range d.Spheres {
		if !s.Center.IsFinite() {
			return fmt.Errorf("%w: sphere %d has non-finite center", ErrInvalidSphere, i)
		}
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return fmt.Errorf("%w: sphere %d radius must be positive, got %g", ErrInvalidSphere, i, s.Radius)
		}
	}

	return nil
}

// Build validates the description and creates the scene and camera.
// aspect is the raster height divided by its width and is used when the
// sensor height is left at zero.
func (d *Description) Build(aspect float64) (*Scene, *geometry.PerspectiveCamera, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	height := d.Camera.Height
	if height == 0 {
		if !(aspect > 0) || math.IsInf(aspect, 0) {
			return nil, nil, fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrDegenerateCamera, aspect)
		}
		height = d.Camera.Width * aspect
	}

	camera := geometry.NewPerspectiveCamera(d.Camera.Eye, d.Camera.LookAt, d.Camera.Up,
		d.Camera.Width, height, d.Camera.Far)

	s := NewScene()
	for _, sphere := range d.Spheres {
		s.AddPrimitive(geometry.NewSphere(sphere.Center, sphere.Radius))
	}

	return s, camera, nil
}
