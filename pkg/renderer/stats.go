package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	PrimaryHits   int           // Pixels whose camera ray hit a primitive
	OcclusionRays int           // Hemisphere rays traced for ambient occlusion
	Tiles         int           // Number of tiles rendered
	Workers       int           // Number of parallel workers used
	Duration      time.Duration // Wall clock time of the render
}

// Add accumulates the per-tile counters of other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryHits += other.PrimaryHits
	s.OcclusionRays += other.OcclusionRays
	s.Tiles += other.Tiles
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PrimaryHits) / float64(s.TotalPixels)
}
