package scene

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Saturate()
}

const (
	sphereGridSize   = 6
	sphereGridExtent = 6.0  // width and depth covered by the grid
	sphereGridFloorY = -1.5 // top of the ground sphere
)

// NewSphereGridScene builds a grid of rough metal spheres whose hue varies across
// the grid and whose chroma grows with depth, resting on a ground sphere under one
// large warm light.
func NewSphereGridScene() *Scene {
	b := NewBuilder("sphere-grid").
		Sky(DefaultSkyColor.Multiply(0.3)).
		Add(core.NewVec3(4, 9, 12), 2.5, material.NewEmissive(core.NewVec3(6.0, 5.75, 5.0))).
		Add(core.NewVec3(0, sphereGridFloorY-1000, 9), 1000, material.NewLambertian(core.Splat(0.5)))

	spacing := sphereGridExtent / float64(sphereGridSize-1)
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - sphereGridExtent/2
			z := float64(j)*spacing + 6
			center := core.NewVec3(x, sphereGridFloorY+radius, z)

			hue := float64(i) / float64(sphereGridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(sphereGridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			b.Add(center, radius, material.NewMirror(color).WithRoughness(roughness))
		}
	}

	return b.MustBuild()
}
