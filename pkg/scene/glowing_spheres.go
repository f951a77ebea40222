package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewGlowingSpheresScene builds the default scene: an open box of huge wall spheres
// lit by two glowing spheres and a glowing ceiling, with three glossy subjects.
func NewGlowingSpheresScene() *Scene {
	metalYellow := material.NewGlossy(core.NewVec3(0.9, 0.9, 0.5), core.Splat(0.9), 0.1, 0.2)
	metalMagenta := metalYellow.
		WithDiffuse(core.NewVec3(0.9, 0.5, 0.9)).
		WithPercentSpecular(0.3).
		WithRoughness(0.2)
	metalCyan := metalYellow.WithDiffuse(core.NewVec3(0.5, 0.9, 0.9))

	matteWhite := material.NewLambertian(core.Splat(0.9))
	matteRed := matteWhite.WithDiffuse(core.NewVec3(1.0, 0.2, 0.2))
	matteGreen := matteWhite.WithDiffuse(core.NewVec3(0.2, 1.0, 0.2))

	lightSource := material.NewEmissive(core.NewVec3(1.0, 0.9, 0.7))

	return NewBuilder("glowing-spheres").
		// Light sources
		Add(core.NewVec3(0, 18, 24), 10.0, lightSource).
		Add(core.NewVec3(0, 16, 6), 10.0, lightSource).
		// Walls
		Add(core.NewVec3(-108, 0, 30), 100.0, matteRed).
		Add(core.NewVec3(108, 0, 30), 100.0, matteGreen).
		Add(core.NewVec3(0, 0, 136), 100.0, matteWhite).
		Add(core.NewVec3(0, -103, 30), 100.0, matteWhite).
		Add(core.NewVec3(0, 125, 30), 100.0, lightSource).
		// Subjects
		Add(core.NewVec3(-6.0, -1.6, 24.0), 2.0, metalCyan).
		Add(core.NewVec3(0.0, -1.6, 20.0), 2.0, metalMagenta).
		Add(core.NewVec3(6.0, -1.6, 24.0), 2.0, metalYellow).
		MustBuild()
}
