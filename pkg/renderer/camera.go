package renderer

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking down +Z
type CameraConfig struct {
	Origin core.Vec3 // Eye position
	FOV    float64   // Horizontal field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	Jitter bool      // Randomize the sample position inside each pixel
}

// Camera generates primary rays for pixels
type Camera struct {
	origin  core.Vec3
	camDist float64
	width   float64
	height  float64
	jitter  bool
}

// NewCamera creates a camera from config
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		origin:  config.Origin,
		camDist: 1.0 / math.Tan(config.FOV*0.5*math.Pi/180.0),
		width:   float64(config.Width),
		height:  float64(config.Height),
		jitter:  config.Jitter,
	}
}

// GetRay returns a unit-direction ray through pixel (x, y), where y counts rows
// upward from the bottom of the image. Both axes are scaled by the image width.
// With jitter enabled it draws one Get2D (X offset, then Y offset).
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	offset := core.NewVec2(0.5, 0.5)
	if c.jitter {
		offset = sampler.Get2D()
	}

	ux := (float64(x) + offset.X - 0.5*c.width) / c.width
	uy := (float64(y) + offset.Y - 0.5*c.height) / c.width
	direction := core.NewVec3(ux, uy, c.camDist).Normalize()

	return core.NewRay(c.origin, direction)
}
