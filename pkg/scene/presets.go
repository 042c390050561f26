package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// DefaultPreset is the scene rendered when none is requested
const DefaultPreset = "spheregrid"

type preset struct {
	displayName string
	description string
	build       func() *Description
}

var presets = map[string]preset{
	"spheregrid": {
		displayName: "Sphere Grid",
		description: "19x19 grid of touching unit spheres seen from above",
		build:       NewSphereGridScene,
	},
	"single": {
		displayName: "Single Sphere",
		description: "Unit sphere at the origin filling the frame",
		build:       NewSingleSphereScene,
	},
	"cluster": {
		displayName: "Sphere Cluster",
		description: "A few spheres resting on a very large ground sphere",
		build:       NewClusterScene,
	},
}

// NewPreset returns a fresh description for a built-in scene
func NewPreset(name string) (*Description, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return p.build(), nil
}

// ListPresets returns metadata for every built-in scene sorted by ID
func ListPresets() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for id, p := range presets {
		infos = append(infos, SceneInfo{
			ID:          id,
			DisplayName: p.displayName,
			Description: p.description,
			Group:       builtinGroup,
			Type:        TypeBuiltin,
			Spheres:     len(p.build().Spheres),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return infos
}

// NewSingleSphereScene creates a unit sphere at the origin viewed head-on
// from (0,0,5)
func NewSingleSphereScene() *Description {
	return &Description{
		Name: "single",
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 0, 5),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
			Width:  1.0,
			Height: 1.0,
			Far:    2.0,
		},
		Spheres: []SphereConfig{
			{Center: core.NewVec3(0, 0, 0), Radius: 1.0},
		},
		AOSamples: 16,
	}
}

// NewClusterScene creates three spheres resting on a ground sphere large
// enough to look flat from the camera
func NewClusterScene() *Description {
	return &Description{
		Name: "cluster",
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 2.5, 7),
			LookAt: core.NewVec3(0, 0.5, 0),
			Up:     core.NewVec3(0, 1, 0),
			Width:  2.0,
			Far:    2.0,
		},
		Spheres: []SphereConfig{
			{Center: core.NewVec3(0, -1000, 0), Radius: 1000},
			{Center: core.NewVec3(0, 1, 0), Radius: 1},
			{Center: core.NewVec3(-1.6, 0.6, 0.8), Radius: 0.6},
			{Center: core.NewVec3(1.4, 0.5, 1.2), Radius: 0.5},
		},
		AOSamples: 32,
	}
}
