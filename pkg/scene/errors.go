package scene

import "errors"

var (
	// ErrDegenerateCamera is returned when camera parameters cannot produce
	// finite primary rays
	ErrDegenerateCamera = errors.New("degenerate camera")

	// ErrInvalidSphere is returned for spheres with non-finite centers or
	// non-positive radii
	ErrInvalidSphere = errors.New("invalid sphere")

	// ErrUnknownScene is returned when a preset name is not registered
	ErrUnknownScene = errors.New("unknown scene")
)
