package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// Config contains rendering configuration
type Config struct {
	Width      int   // Raster width in pixels, at least 2
	Height     int   // Raster height in pixels, at least 2
	AOSamples  int   // Hemisphere rays per visible pixel
	Mode       Mode  // Shading mode
	TileSize   int   // Size of each square tile (0 = 64)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i samples with Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      900,
		Height:     700,
		AOSamples:  1,
		Mode:       ModeAONormal,
		TileSize:   64,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Validate rejects configurations that would divide by zero or sample nothing
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w: %dx%d, both must be at least 2", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.AOSamples < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.AOSamples)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// Tracer is the scene side of rendering: nearest-hit queries and ambient
// occlusion estimation
type Tracer interface {
	Trace(rays []core.Ray) []core.Hit
	AmbientOcclusion(hits []core.Hit, sampleCount int, sampler core.Sampler) []float64
}

// RayGenerator produces primary rays for a region of the raster
type RayGenerator interface {
	GenerateRaysBounds(bounds image.Rectangle, screenWidth, screenHeight int) []core.Ray
}

// Raytracer renders a scene through a camera into a Framebuffer
type Raytracer struct {
	scene  Tracer
	camera RayGenerator
	config Config
	logger core.Logger
}

// NewRaytracer validates config and creates a raytracer.
// A nil logger discards log output.
func NewRaytracer(scene Tracer, camera RayGenerator, config Config, logger core.Logger) (*Raytracer, error) {
	if config.Mode == "" {
		config.Mode = ModeAONormal
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		scene:  scene,
		camera: camera,
		config: config,
		logger: logger,
	}, nil
}

// Config returns the effective configuration after defaults were applied
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the full raster using the worker pool. The result only
// depends on the seed and tile size, not on the number of workers. With a
// single tile covering the raster this is exactly generate, trace, ambient
// occlusion and shade over the whole image with one generator.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	numWorkers := min(rt.config.NumWorkers, len(tiles))
	rt.logger.Printf("Rendering %dx%d (%s, %d AO samples) in %d tiles using %d workers...\n",
		rt.config.Width, rt.config.Height, rt.config.Mode, rt.config.AOSamples, len(tiles), numWorkers)

	pool := NewWorkerPool(rt, len(tiles), numWorkers)
	pool.Start(ctx)

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:        tile,
			TaskID:      taskID,
			Framebuffer: fb,
		})
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}

	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", firstErr)
	}

	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render completed in %v: %d/%d pixels hit, %d occlusion rays\n",
		stats.Duration, stats.PrimaryHits, stats.TotalPixels, stats.OcclusionRays)

	return fb, stats, nil
}

// RenderTile renders one tile into fb and returns its statistics
func (rt *Raytracer) RenderTile(tile *Tile, fb *Framebuffer) RenderStats {
	bounds := tile.Bounds
	rays := rt.camera.GenerateRaysBounds(bounds, rt.config.Width, rt.config.Height)
	hits := rt.scene.Trace(rays)

	var coefficients []float64
	if rt.config.Mode.needsOcclusion() {
		coefficients = rt.scene.AmbientOcclusion(hits, rt.config.AOSamples, tile.Sampler)
	} else {
		coefficients = make([]float64, len(hits))
	}

	pix := Shade(hits, coefficients, rt.config.Mode)

	stats := RenderStats{TotalPixels: len(hits), Tiles: 1}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.SetRGB(x, y, pix[3*i], pix[3*i+1], pix[3*i+2])
			if !hits[i].IsMiss() {
				stats.PrimaryHits++
			}
			i++
		}
	}
	if rt.config.Mode.needsOcclusion() {
		stats.OcclusionRays = stats.PrimaryHits * rt.config.AOSamples
	}

	return stats
}
