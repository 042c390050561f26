package renderer

import "errors"

var (
	// ErrInvalidDimensions is returned for rasters narrower or shorter than
	// two pixels, which would divide by zero in ray generation
	ErrInvalidDimensions = errors.New("invalid raster dimensions")

	// ErrInvalidSamples is returned for a non-positive ambient-occlusion
	// sample count
	ErrInvalidSamples = errors.New("invalid ambient occlusion sample count")

	// ErrInvalidMode is returned for an unrecognised shading mode
	ErrInvalidMode = errors.New("invalid shading mode")
)
