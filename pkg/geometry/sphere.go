package geometry

import (
	"math"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// selfIntersectionEpsilon rejects hits at or just in front of the ray origin,
// so rays spawned on a surface do not report that same surface
const selfIntersectionEpsilon = 1e-6

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere. Only the near root of the
// quadratic is considered, so rays starting inside the sphere miss it.
func (s *Sphere) Hit(ray core.Ray) core.Hit {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return core.Miss()
	}

	t := (-b - math.Sqrt(discriminant)) / (2.0 * a)
	if t <= selfIntersectionEpsilon {
		return core.Miss()
	}

	point := ray.At(t)
	normal := point.Subtract(s.Center).Normalize()

	return core.NewHit(t, normal, point)
}
