package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewMirrorBoxScene builds a closed box of wall spheres holding one perfect mirror
// sphere in front of the camera and one glowing sphere above it.
func NewMirrorBoxScene() *Scene {
	white := material.NewLambertian(core.Splat(0.75))
	red := white.WithDiffuse(core.NewVec3(0.75, 0.15, 0.15))
	blue := white.WithDiffuse(core.NewVec3(0.15, 0.15, 0.75))
	mirror := material.NewMirror(core.Splat(0.95))
	light := material.NewEmissive(core.NewVec3(1.0, 0.95, 0.85).Multiply(6))

	return NewBuilder("mirror-box").
		Sky(core.Vec3{}).
		Add(core.NewVec3(0, 6, 14), 1.5, light).
		Add(core.NewVec3(0, -1, 14), 3.0, mirror).
		Add(core.NewVec3(-1010, 0, 0), 1000, red).
		Add(core.NewVec3(1010, 0, 0), 1000, blue).
		Add(core.NewVec3(0, -1004, 0), 1000, white).
		Add(core.NewVec3(0, 1010, 0), 1000, white).
		Add(core.NewVec3(0, 0, 1025), 1000, white).
		Add(core.NewVec3(0, 0, -1005), 1000, white).
		MustBuild()
}
