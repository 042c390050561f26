package core

import "math"

// Hit contains information about a ray-object intersection.
// A miss is represented by T == +Inf with a zero normal and point.
type Hit struct {
	T      float64 // Parameter t along the ray
	Normal Vec3    // Outward unit surface normal
	Point  Vec3    // World-space point of intersection
}

// NewHit creates a hit record
func NewHit(t float64, normal, point Vec3) Hit {
	return Hit{T: t, Normal: normal, Point: point}
}

// Miss returns the canonical miss sentinel
func Miss() Hit {
	return Hit{T: math.Inf(1)}
}

// IsMiss reports whether the hit is the miss sentinel
func (h Hit) IsMiss() bool {
	return math.IsInf(h.T, 1)
}

// Update folds a candidate into h, keeping whichever is nearer.
// A miss never replaces a finite hit.
func (h *Hit) Update(candidate Hit) {
	if !candidate.IsMiss() && candidate.T < h.T {
		h.T = candidate.T
		h.Normal = candidate.Normal
		h.Point = candidate.Point
	}
}
