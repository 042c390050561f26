package core

import (
	"math"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	directions := []Vec3{
		NewVec3(0, 0, -1),
		NewVec3(0, -10, -17),
		NewVec3(1e-3, 2e-3, 0),
		NewVec3(100, 100, 100),
	}

	for _, d := range directions {
		ray := NewRay(NewVec3(1, 2, 3), d)
		if math.Abs(ray.Direction.Length()-1) > 1e-12 {
			t.Errorf("Direction %v: expected unit length, got %f", d, ray.Direction.Length())
		}
	}
}

func TestRay_At(t *testing.T) {
	origin := NewVec3(1, 2, 3)
	ray := NewRay(origin, NewVec3(0, 0, 5))

	if ray.At(0) != origin {
		t.Errorf("Expected At(0) == origin, got %v", ray.At(0))
	}

	expected := NewVec3(1, 2, 5)
	if !vecNear(ray.At(2), expected, 1e-12) {
		t.Errorf("Expected At(2) = %v, got %v", expected, ray.At(2))
	}
}
