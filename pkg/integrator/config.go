package integrator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("integrator: invalid config")

// Config controls the path tracing loop
type Config struct {
	MaxBounces      int     // Bounces after the primary hit; a path has at most MaxBounces+1 segments
	MinRayDist      float64 // Hits closer than this are ignored (self-intersection guard)
	MaxRayDist      float64 // Hits farther than this are ignored; also the "no hit" sentinel
	RussianRoulette bool    // Randomly terminate low-throughput paths
}

// DefaultConfig returns the settings the built-in scenes were tuned for
func DefaultConfig() Config {
	return Config{
		MaxBounces:      8,
		MinRayDist:      0.001,
		MaxRayDist:      10000.0,
		RussianRoulette: false,
	}
}

// Validate checks the bounce count and distance bounds
func (c Config) Validate() error {
	if c.MaxBounces < 0 {
		return fmt.Errorf("%w: max bounces %d is negative", ErrInvalidConfig, c.MaxBounces)
	}
	if !(c.MinRayDist > 0) {
		return fmt.Errorf("%w: min ray distance %v must be positive", ErrInvalidConfig, c.MinRayDist)
	}
	if !(c.MaxRayDist > c.MinRayDist) {
		return fmt.Errorf("%w: max ray distance %v must exceed min ray distance %v", ErrInvalidConfig, c.MaxRayDist, c.MinRayDist)
	}
	return nil
}
