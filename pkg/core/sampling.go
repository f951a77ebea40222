package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1), X drawn before Y
func (r *RandomSampler) Get2D() Vec2 {
	x := r.random.Float64()
	y := r.random.Float64()
	return NewVec2(x, y)
}

// SampleOnUnitSphere maps a 2D sample to a uniform direction on the unit sphere.
// sample.X picks the height z = 2u-1, sample.Y the azimuth.
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := sample.X*2.0 - 1.0
	a := sample.Y * 2.0 * math.Pi
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	return NewVec3(r*math.Cos(a), r*math.Sin(a), z)
}

// RandomUnitVector draws one uniform direction on the unit sphere from sampler
func RandomUnitVector(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}
