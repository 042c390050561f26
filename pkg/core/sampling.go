package core

import (
	"math"
	"math/rand"
)

// Vec2 holds a pair of sample values
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleHemisphereDirection maps a 2D sample to a direction above the U axis
// of frame. sample.X is the height along U and sample.Y the fraction of a full
// turn around it. The distribution is neither uniform in solid angle nor
// cosine weighted, and the result is not unit length.
func SampleHemisphereDirection(frame OrthonormalBasis, sample Vec2) Vec3 {
	height := sample.X
	angle := 2.0 * math.Pi * sample.Y
	return frame.U.Multiply(height).
		Add(frame.V.Multiply(math.Cos(angle))).
		Add(frame.W.Multiply(math.Sin(angle)))
}

// SampleHemisphere generates count rays leaving center into the hemisphere
// around normal
func SampleHemisphere(center, normal Vec3, count int, sampler Sampler) []Ray {
	frame := NewBasisFromU(normal)
	rays := make([]Ray, 0, count)

	for i := 0; i < count; i++ {
		direction := SampleHemisphereDirection(frame, sampler.Get2D())
		rays = append(rays, NewRay(center, direction))
	}

	return rays
}
