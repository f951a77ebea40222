package material

import "github.com/df07/go-sphere-tracer/pkg/core"

// ScatterResult is the outcome of sampling the material at a hit point
type ScatterResult struct {
	Direction   core.Vec3 // New unit ray direction
	Attenuation core.Vec3 // Albedo of the chosen lobe
	IsSpecular  bool      // Whether the specular lobe was chosen
}

// Scatter picks the specular lobe with probability PercentSpecular, otherwise the diffuse one.
//
// The diffuse direction is normalize(normal + random unit vector). The specular direction is
// the mirror reflection of rayDir blended toward the diffuse direction by Roughness².
// Draws exactly one Get1D (lobe choice) followed by one Get2D (unit vector), whichever lobe wins.
func (m Material) Scatter(rayDir, normal core.Vec3, sampler core.Sampler) ScatterResult {
	isSpecular := sampler.Get1D() < m.PercentSpecular

	diffuseDir := normal.Add(core.RandomUnitVector(sampler)).Normalize()
	if !isSpecular {
		return ScatterResult{Direction: diffuseDir, Attenuation: m.Diffuse}
	}

	specMix := m.Roughness * m.Roughness
	specularDir := rayDir.Reflect(normal).Mix(diffuseDir, specMix).Normalize()
	return ScatterResult{Direction: specularDir, Attenuation: m.Specular, IsSpecular: true}
}
