package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// PathTracer estimates incoming radiance with unidirectional path tracing over a sphere scene
type PathTracer struct {
	config Config
	scene  *scene.Scene
}

// NewPathTracer creates a path tracer for the scene after validating config
func NewPathTracer(s *scene.Scene, config Config) (*PathTracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PathTracer{config: config, scene: s}, nil
}

// Config returns the tracer configuration
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Scene returns the scene being traced
func (pt *PathTracer) Scene() *scene.Scene {
	return pt.scene
}

// Trace returns the radiance arriving along ray.
//
// Each bounce draws from sampler in this order: one Get1D for the lobe choice, one Get2D
// for the diffuse unit vector, then one Get1D for Russian roulette when it is enabled.
func (pt *PathTracer) Trace(ray core.Ray, sampler core.Sampler) core.Vec3 {
	col := core.Vec3{}
	throughput := core.Splat(1.0)

	for bounce := 0; bounce <= pt.config.MaxBounces; bounce++ {
		hit, ok := pt.closestHit(ray)
		if !ok {
			return col.Add(pt.scene.SkyColor().MultiplyVec(throughput))
		}

		scatter := hit.Material.Scatter(ray.Direction, hit.Normal, sampler)
		ray = core.NewRay(hit.HitPoint, scatter.Direction)

		// Emission is picked up before this bounce's albedo attenuates the path
		col = col.Add(hit.Material.Emissive.MultiplyVec(throughput))
		throughput = throughput.MultiplyVec(scatter.Attenuation)

		if pt.config.RussianRoulette {
			survive, compensation := russianRoulette(throughput, sampler)
			if !survive {
				break
			}
			throughput = throughput.Multiply(compensation)
		}
	}

	// Radiance still carried by the remaining throughput is dropped
	return col
}

// closestHit returns the nearest hit strictly between MinRayDist and MaxRayDist.
// The first sphere in scene order wins ties.
func (pt *PathTracer) closestHit(ray core.Ray) (geometry.HitInfo, bool) {
	var closest geometry.HitInfo
	closestDist := pt.config.MaxRayDist

	for _, sphere := range pt.scene.Spheres() {
		hit := sphere.Intersect(ray, pt.config.MinRayDist, pt.config.MaxRayDist)
		if !hit.DidHit {
			continue
		}
		dist := ray.Origin.Subtract(hit.HitPoint).Length()
		if dist < closestDist && dist > pt.config.MinRayDist {
			closestDist = dist
			closest = hit
		}
	}

	return closest, closestDist != pt.config.MaxRayDist
}

// russianRoulette keeps the path with probability equal to the largest throughput component.
// Returns (survive, compensation) where compensation rescales survivors to stay unbiased.
func russianRoulette(throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	p := throughput.MaxComponent()
	if sampler.Get1D() > p || p <= 0 {
		return false, 0
	}
	return true, 1.0 / p
}
