package renderer

import (
	"context"

	"github.com/df07/go-ambient-occlusion/pkg/core"
	"github.com/df07/go-ambient-occlusion/pkg/scene"
)

// RenderDescription validates config and desc, builds the scene and renders
// it. A zero config.AOSamples uses the sample count recommended by desc, or
// the default when desc recommends none.
func RenderDescription(ctx context.Context, desc *scene.Description, config Config, logger core.Logger) (*Framebuffer, RenderStats, error) {
	if config.AOSamples == 0 {
		config.AOSamples = desc.AOSamples
	}
	if config.AOSamples == 0 {
		config.AOSamples = DefaultConfig().AOSamples
	}
	if config.Mode == "" {
		config.Mode = ModeAONormal
	}
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	s, camera, err := desc.Build(float64(config.Height) / float64(config.Width))
	if err != nil {
		return nil, RenderStats{}, err
	}

	rt, err := NewRaytracer(s, camera, config, logger)
	if err != nil {
		return nil, RenderStats{}, err
	}

	return rt.Render(ctx)
}
