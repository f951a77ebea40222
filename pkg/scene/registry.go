package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type entry struct {
	info  SceneInfo
	build func() *Scene
}

// DefaultSceneName is used when no scene is requested
const DefaultSceneName = "glowing-spheres"

var builtins = map[string]entry{
	"glowing-spheres": {
		info:  SceneInfo{Name: "glowing-spheres", Description: "Open box of colored walls, three glossy spheres, glowing lights"},
		build: NewGlowingSpheresScene,
	},
	"mirror-box": {
		info:  SceneInfo{Name: "mirror-box", Description: "Closed box with a perfect mirror sphere and one light"},
		build: NewMirrorBoxScene,
	},
	"sphere-grid": {
		info:  SceneInfo{Name: "sphere-grid", Description: "Grid of rough metal spheres in OKLCH colors on a ground sphere"},
		build: NewSphereGridScene,
	},
}

// Create builds the named built-in scene. An empty name selects the default scene.
func Create(name string) (*Scene, error) {
	if name == "" {
		name = DefaultSceneName
	}
	e, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return e.build(), nil
}

// List returns every built-in scene sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, e := range builtins {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
