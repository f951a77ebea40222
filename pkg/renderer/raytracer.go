package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-sphere-tracer/pkg/colorspace"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/log"
)

// ErrInvalidConfig is returned for unusable image or sampling settings
var ErrInvalidConfig = errors.New("renderer: invalid config")

// Tracer estimates the radiance arriving along a ray
type Tracer interface {
	Trace(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Config contains image and sampling configuration
type Config struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays averaged per pixel
	Exposure        float64 // Radiance multiplier applied before tone mapping
	FOV             float64 // Horizontal field of view in degrees
	Jitter          bool    // Randomize sample positions inside each pixel
	Seed            int64   // Seed for every random generator used by the render
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           300,
		Height:          120,
		SamplesPerPixel: 8,
		Exposure:        colorspace.DefaultExposure,
		FOV:             90,
		Jitter:          true,
		Seed:            42,
	}
}

// Validate checks image size, sample count, exposure and field of view
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if !(c.Exposure > 0) {
		return fmt.Errorf("%w: exposure %v must be positive", ErrInvalidConfig, c.Exposure)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: field of view %v outside (0, 180)", ErrInvalidConfig, c.FOV)
	}
	return nil
}

func (c Config) camera() *Camera {
	return NewCamera(CameraConfig{
		FOV:    c.FOV,
		Width:  c.Width,
		Height: c.Height,
		Jitter: c.Jitter,
	})
}

// Raytracer renders a whole frame on the calling goroutine from a single random sequence
type Raytracer struct {
	tracer   Tracer
	config   Config
	camera   *Camera
	pipeline colorspace.Pipeline
	sampler  core.Sampler
	logger   log.Logger
}

// progressSteps is how many progress lines RenderPass logs per frame
const progressSteps = 10

// NewRaytracer creates a single-threaded raytracer
func NewRaytracer(tracer Tracer, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{
		tracer:   tracer,
		config:   config,
		camera:   config.camera(),
		pipeline: colorspace.NewPipeline(config.Exposure),
		sampler:  core.NewSeededSampler(config.Seed),
		logger:   log.New("raytracer"),
	}, nil
}

// SetLogger replaces the logger used for progress output
func (rt *Raytracer) SetLogger(logger log.Logger) {
	rt.logger = logger
}

// SetSampler replaces the random source, mostly for tests
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// RenderPass renders every pixel with the configured samples and returns the encoded image.
// Rows are visited from the bottom of the image up, pixels left to right; each sample
// draws its pixel jitter and then traces one path.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	w, h := rt.config.Width, rt.config.Height
	grid := newPixelStatsGrid(w, h)
	rowsPerStep := max(1, h/progressSteps)

	for y := 0; y < h; y++ {
		row := grid[h-1-y]
		for x := 0; x < w; x++ {
			for i := 0; i < rt.config.SamplesPerPixel; i++ {
				ray := rt.camera.GetRay(x, y, rt.sampler)
				row[x].AddSample(rt.tracer.Trace(ray, rt.sampler))
			}
		}
		if done := y + 1; done%rowsPerStep == 0 || done == h {
			rt.logger.Debugf("Rendering (%dx%d) %5.2f%%", w, h, 100*float64(done)/float64(h))
		}
	}
	rt.logger.Infof("Rendered %dx%d at %d samples per pixel", w, h, rt.config.SamplesPerPixel)

	return assembleImage(grid, rt.pipeline, rt.config.SamplesPerPixel)
}
