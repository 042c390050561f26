package scene

import (
	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// occlusionBias amplifies the measured hit fraction before clamping
const occlusionBias = 1.1

// Scene contains the primitives rays are traced against.
// It is only mutated while being built; tracing never modifies it and is
// safe to run from many goroutines at once.
type Scene struct {
	Shapes []core.Shape // Objects in the scene, scanned linearly per ray
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddPrimitive appends a shape to the scene
func (s *Scene) AddPrimitive(shape core.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Cast returns the nearest hit along ray, or a miss
func (s *Scene) Cast(ray core.Ray) core.Hit {
	hit := core.Miss()
	for _, shape := range s.Shapes {
		hit.Update(shape.Hit(ray))
	}
	return hit
}

// Trace casts every ray; hits[i] belongs to rays[i]
func (s *Scene) Trace(rays []core.Ray) []core.Hit {
	hits := make([]core.Hit, len(rays))
	for i, ray := range rays {
		hits[i] = s.Cast(ray)
	}
	return hits
}

// OcclusionFraction returns the biased fraction of rays that hit something,
// clamped to 1. An empty bundle is unoccluded.
func (s *Scene) OcclusionFraction(rays []core.Ray) float64 {
	if len(rays) == 0 {
		return 0
	}

	occluded := 0
	for _, hit := range s.Trace(rays) {
		if !hit.IsMiss() {
			occluded++
		}
	}

	return min(1.0, occlusionBias*float64(occluded)/float64(len(rays)))
}

// AmbientOcclusion estimates an occlusion coefficient for every hit by
// sampling sampleCount rays in the hemisphere above it. Misses get 0.
func (s *Scene) AmbientOcclusion(hits []core.Hit, sampleCount int, sampler core.Sampler) []float64 {
	coefficients := make([]float64, len(hits))

	for i, hit := range hits {
		if hit.IsMiss() {
			continue
		}
		rays := core.SampleHemisphere(hit.Point, hit.Normal, sampleCount, sampler)
		coefficients[i] = s.OcclusionFraction(rays)
	}

	return coefficients
}
