package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape interface for objects that can be hit by rays.
// Hit returns Miss() when the ray does not intersect the shape.
type Shape interface {
	Hit(ray Ray) Hit
}
