package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material has out-of-range parameters
var ErrInvalidMaterial = errors.New("material: invalid material")

// Material describes how a surface emits and reflects light.
// Materials are plain values; deriving a variant copies the base.
type Material struct {
	Diffuse         core.Vec3 // Diffuse albedo in [0,1]
	Emissive        core.Vec3 // Emitted radiance, unbounded
	Specular        core.Vec3 // Specular albedo in [0,1]
	PercentSpecular float64   // Probability of a specular bounce
	Roughness       float64   // 0 = mirror, 1 = specular lobe collapses onto the diffuse one
}

// New creates a material from all of its parameters
func New(diffuse, emissive, specular core.Vec3, percentSpecular, roughness float64) Material {
	return Material{
		Diffuse:         diffuse,
		Emissive:        emissive,
		Specular:        specular,
		PercentSpecular: percentSpecular,
		Roughness:       roughness,
	}
}

// NewLambertian creates a purely diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Diffuse: albedo}
}

// NewEmissive creates a light source that absorbs everything it does not emit
func NewEmissive(emission core.Vec3) Material {
	return Material{Emissive: emission}
}

// NewGlossy creates a material that reflects specularly with probability percentSpecular
func NewGlossy(diffuse, specular core.Vec3, percentSpecular, roughness float64) Material {
	return Material{
		Diffuse:         diffuse,
		Specular:        specular,
		PercentSpecular: percentSpecular,
		Roughness:       roughness,
	}
}

// NewMirror creates a perfect mirror with the given specular albedo
func NewMirror(specular core.Vec3) Material {
	return Material{Specular: specular, PercentSpecular: 1}
}

// WithDiffuse returns a copy of m with the diffuse albedo replaced
func (m Material) WithDiffuse(diffuse core.Vec3) Material {
	m.Diffuse = diffuse
	return m
}

// WithEmissive returns a copy of m with the emission replaced
func (m Material) WithEmissive(emissive core.Vec3) Material {
	m.Emissive = emissive
	return m
}

// WithSpecular returns a copy of m with the specular albedo replaced
func (m Material) WithSpecular(specular core.Vec3) Material {
	m.Specular = specular
	return m
}

// WithPercentSpecular returns a copy of m with the specular probability replaced
func (m Material) WithPercentSpecular(p float64) Material {
	m.PercentSpecular = p
	return m
}

// WithRoughness returns a copy of m with the roughness replaced
func (m Material) WithRoughness(roughness float64) Material {
	m.Roughness = roughness
	return m
}

// IsEmissive reports whether the material emits any light
func (m Material) IsEmissive() bool {
	return m.Emissive.MaxComponent() > 0
}

// Validate checks that probabilities lie in [0,1] and that no color is negative or non-finite
func (m Material) Validate() error {
	if m.PercentSpecular < 0 || m.PercentSpecular > 1 {
		return fmt.Errorf("%w: percent specular %v outside [0,1]", ErrInvalidMaterial, m.PercentSpecular)
	}
	if m.Roughness < 0 || m.Roughness > 1 {
		return fmt.Errorf("%w: roughness %v outside [0,1]", ErrInvalidMaterial, m.Roughness)
	}
	for name, c := range map[string]core.Vec3{"diffuse": m.Diffuse, "emissive": m.Emissive, "specular": m.Specular} {
		if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
			return fmt.Errorf("%w: %s color %v must be finite and non-negative", ErrInvalidMaterial, name, c)
		}
	}
	return nil
}
