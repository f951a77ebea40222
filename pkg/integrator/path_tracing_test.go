package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// sequenceSampler replays a fixed list of values and fails the test when it runs dry
type sequenceSampler struct {
	t      *testing.T
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	if s.next >= len(s.values) {
		s.t.Fatalf("sampler exhausted after %d draws", s.next)
	}
	v := s.values[s.next]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() core.Vec2 {
	x := s.Get1D()
	y := s.Get1D()
	return core.NewVec2(x, y)
}

func newTracer(t *testing.T, s *scene.Scene, config Config) *PathTracer {
	t.Helper()
	pt, err := NewPathTracer(s, config)
	if err != nil {
		t.Fatalf("Failed to create path tracer: %v", err)
	}
	return pt
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestTrace_MissReturnsSky(t *testing.T) {
	s := scene.NewBuilder("far").
		Sky(core.NewVec3(0.5, 0.8, 0.9)).
		Add(core.NewVec3(0, 0, -50), 1, material.NewEmissive(core.Splat(1))).
		MustBuild()
	pt := newTracer(t, s, DefaultConfig())
	sampler := &sequenceSampler{t: t}

	col := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), sampler)
	if col != core.NewVec3(0.5, 0.8, 0.9) {
		t.Errorf("Expected sky color, got %v", col)
	}
	if sampler.next != 0 {
		t.Errorf("A primary miss should not draw any samples, drew %d", sampler.next)
	}
}

func TestTrace_MirrorThenEmitterThenSky(t *testing.T) {
	// Camera ray hits the mirror head on, reflects straight back past the camera
	// onto the emitter, then scatters diffusely off the emitter into the sky.
	mirror := material.NewMirror(core.Splat(0.8))
	emitter := material.New(core.Splat(0.5), core.Splat(4), core.Vec3{}, 0, 0)
	s := scene.NewBuilder("mirror-emitter").
		Sky(core.NewVec3(0.5, 0.8, 0.9)).
		Add(core.NewVec3(0, 0, 5), 1, mirror).
		Add(core.NewVec3(0, 0, -5), 1, emitter).
		MustBuild()
	pt := newTracer(t, s, DefaultConfig())

	sampler := &sequenceSampler{t: t, values: []float64{
		0.5, 0.5, 0.0, // mirror: specular (0.5 < 1), diffuse vector unused
		0.5, 0.5, 0.0, // emitter: diffuse (0.5 >= 0), unit vector (1, 0, 0)
	}}

	col := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), sampler)

	// emission 4 * mirror 0.8, then sky * (0.8 * 0.5)
	expected := core.Splat(4 * 0.8).Add(core.NewVec3(0.5, 0.8, 0.9).Multiply(0.8 * 0.5))
	if !vecNear(col, expected, 1e-5) {
		t.Errorf("Expected %v, got %v", expected, col)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws, got %d", sampler.next)
	}
}

func TestTrace_NoEmissionNoSkyIsBlack(t *testing.T) {
	b := scene.NewBuilder("dark").Sky(core.Vec3{})
	for _, sphere := range scene.NewGlowingSpheresScene().Spheres() {
		b.Add(sphere.Center, sphere.Radius, sphere.Material.WithEmissive(core.Vec3{}))
	}
	s := b.MustBuild()

	configs := map[string]Config{
		"default":          DefaultConfig(),
		"many bounces":     {MaxBounces: 64, MinRayDist: 0.001, MaxRayDist: 10000},
		"russian roulette": {MaxBounces: 32, MinRayDist: 0.001, MaxRayDist: 10000, RussianRoulette: true},
	}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			pt := newTracer(t, s, config)
			sampler := core.NewSeededSampler(42)
			for i := 0; i < 500; i++ {
				dir := core.RandomUnitVector(sampler)
				if col := pt.Trace(core.NewRay(core.Vec3{}, dir), sampler); col != (core.Vec3{}) {
					t.Fatalf("Ray %d: expected black, got %v", i, col)
				}
			}
		})
	}
}

// mirrorShell returns a scene that traps rays inside an emitting mirror sphere:
// every bounce reflects back inward and picks up the emission again.
func mirrorShell(specular float64) *scene.Scene {
	shell := material.New(core.Vec3{}, core.Splat(1), core.Splat(specular), 1, 0)
	return scene.NewBuilder("shell").Add(core.Vec3{}, 10, shell).MustBuild()
}

func TestTrace_BounceLimit(t *testing.T) {
	for _, bounces := range []int{0, 1, 8, 20} {
		config := DefaultConfig()
		config.MaxBounces = bounces
		pt := newTracer(t, mirrorShell(1), config)

		col := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), core.NewSeededSampler(1))
		expected := core.Splat(float64(bounces + 1))
		if !vecNear(col, expected, 1e-9) {
			t.Errorf("MaxBounces=%d: expected %v, got %v", bounces, expected, col)
		}
	}
}

func TestTrace_RussianRoulette(t *testing.T) {
	config := DefaultConfig()
	config.RussianRoulette = true
	pt := newTracer(t, mirrorShell(0.5), config)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))

	t.Run("terminates after first bounce", func(t *testing.T) {
		sampler := &sequenceSampler{t: t, values: []float64{0, 0.5, 0, 0.9}}
		col := pt.Trace(ray, sampler)
		if !vecNear(col, core.Splat(1), 1e-9) {
			t.Errorf("Expected one emission, got %v", col)
		}
	})

	t.Run("survivor is compensated", func(t *testing.T) {
		sampler := &sequenceSampler{t: t, values: []float64{
			0, 0.5, 0, 0.1, // survive: throughput 0.5 -> 1
			0, 0.5, 0, 0.9, // terminate
		}}
		col := pt.Trace(ray, sampler)
		if !vecNear(col, core.Splat(2), 1e-9) {
			t.Errorf("Expected two full emissions, got %v", col)
		}
	})
}

func TestTrace_RussianRouletteDisabledNeverDrawsExtra(t *testing.T) {
	config := DefaultConfig()
	config.MaxBounces = 1
	pt := newTracer(t, mirrorShell(0.5), config)
	sampler := &sequenceSampler{t: t, values: []float64{0, 0.5, 0, 0, 0.5, 0}}

	pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), sampler)
	if sampler.next != 6 {
		t.Errorf("Expected 3 draws per bounce, got %d total", sampler.next)
	}
}

func TestTrace_FirstSphereWinsTies(t *testing.T) {
	s := scene.NewBuilder("ties").
		Sky(core.Vec3{}).
		Add(core.NewVec3(0, 0, 5), 1, material.NewEmissive(core.NewVec3(1, 0, 0))).
		Add(core.NewVec3(0, 0, 5), 1, material.NewEmissive(core.NewVec3(0, 1, 0))).
		MustBuild()
	pt := newTracer(t, s, DefaultConfig())

	col := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.NewSeededSampler(3))
	if col != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected emission of the first sphere, got %v", col)
	}
}

func TestTrace_NearestSphereWins(t *testing.T) {
	s := scene.NewBuilder("nearest").
		Sky(core.Vec3{}).
		Add(core.NewVec3(0, 0, 20), 1, material.NewEmissive(core.NewVec3(0, 1, 0))).
		Add(core.NewVec3(0, 0, 5), 1, material.NewEmissive(core.NewVec3(1, 0, 0))).
		MustBuild()
	pt := newTracer(t, s, DefaultConfig())

	col := pt.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.NewSeededSampler(3))
	if col != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected emission of the nearer sphere, got %v", col)
	}
}

func TestTrace_GlowingSpheresFiniteAndNonNegative(t *testing.T) {
	pt := newTracer(t, scene.NewGlowingSpheresScene(), DefaultConfig())
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 2000; i++ {
		dir := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, 1).Normalize()
		col := pt.Trace(core.NewRay(core.Vec3{}, dir), sampler)
		if !col.IsFinite() || col.X < 0 || col.Y < 0 || col.Z < 0 {
			t.Fatalf("Ray %d: invalid radiance %v", i, col)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		expectErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero bounces", func(c *Config) { c.MaxBounces = 0 }, false},
		{"negative bounces", func(c *Config) { c.MaxBounces = -1 }, true},
		{"zero min distance", func(c *Config) { c.MinRayDist = 0 }, true},
		{"max below min", func(c *Config) { c.MaxRayDist = 0.0001 }, true},
		{"max equals min", func(c *Config) { c.MaxRayDist = c.MinRayDist }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.expectErr != (err != nil) {
				t.Fatalf("Expected error=%t, got %v", tt.expectErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewPathTracer_RejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxBounces = -3
	if _, err := NewPathTracer(scene.NewGlowingSpheresScene(), config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
