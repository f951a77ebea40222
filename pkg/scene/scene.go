package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

var (
	ErrInvalidGeometry = errors.New("scene: invalid geometry")
	ErrEmptyScene      = errors.New("scene: no spheres")
	ErrUnknownScene    = errors.New("scene: unknown scene")
)

// DefaultSkyColor is the radiance returned for rays that escape the scene
var DefaultSkyColor = core.NewVec3(0.5, 0.8, 0.9)

// Scene is an immutable, ordered collection of spheres plus the sky color.
// It is built once and shared read-only by every trace call.
type Scene struct {
	name     string
	spheres  []geometry.Sphere
	skyColor core.Vec3
}

// Builder accumulates spheres and validates them when the scene is built
type Builder struct {
	name     string
	spheres  []geometry.Sphere
	skyColor core.Vec3
}

// NewBuilder starts a scene with the default sky color
func NewBuilder(name string) *Builder {
	return &Builder{name: name, skyColor: DefaultSkyColor}
}

// Sky sets the color of rays that miss every sphere
func (b *Builder) Sky(color core.Vec3) *Builder {
	b.skyColor = color
	return b
}

// Add appends a sphere. Array order decides ties between equally distant hits.
func (b *Builder) Add(center core.Vec3, radius float64, mat material.Material) *Builder {
	b.spheres = append(b.spheres, geometry.NewSphere(center, radius, mat))
	return b
}

// Build validates every sphere and returns the finished scene
func (b *Builder) Build() (*Scene, error) {
	if len(b.spheres) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyScene, b.name)
	}
	if !b.skyColor.IsFinite() {
		return nil, fmt.Errorf("%w: sky color %v is not finite", ErrInvalidGeometry, b.skyColor)
	}

	for i, s := range b.spheres {
		if !s.Center.IsFinite() {
			return nil, fmt.Errorf("%w: sphere %d has non-finite center %v", ErrInvalidGeometry, i, s.Center)
		}
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return nil, fmt.Errorf("%w: sphere %d has radius %v", ErrInvalidGeometry, i, s.Radius)
		}
		if err := s.Material.Validate(); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	spheres := make([]geometry.Sphere, len(b.spheres))
	copy(spheres, b.spheres)
	return &Scene{name: b.name, spheres: spheres, skyColor: b.skyColor}, nil
}

// MustBuild is like Build but panics on invalid input. Meant for built-in scenes.
func (b *Builder) MustBuild() *Scene {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the scene name
func (s *Scene) Name() string {
	return s.name
}

// Spheres returns the spheres in intersection order. The slice must not be modified.
func (s *Scene) Spheres() []geometry.Sphere {
	return s.spheres
}

// SkyColor returns the radiance of escaped rays
func (s *Scene) SkyColor() core.Vec3 {
	return s.skyColor
}

// EmissiveCount returns how many spheres emit light
func (s *Scene) EmissiveCount() int {
	count := 0
	for _, sphere := range s.spheres {
		if sphere.Material.IsEmissive() {
			count++
		}
	}
	return count
}
