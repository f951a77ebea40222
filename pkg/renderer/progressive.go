package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/colorspace"
	"github.com/df07/go-sphere-tracer/pkg/log"
)

// errPoolClosed is returned when the worker pool shuts down mid-pass
var errPoolClosed = errors.New("renderer: worker pool closed unexpectedly")

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int // Size of each square tile in pixels
	InitialSamples int // Samples for the first preview pass
	MaxPasses      int // Maximum number of passes
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       32,
		InitialSamples: 1,
		MaxPasses:      4,
		NumWorkers:     0, // Auto-detect CPU count
	}
}

// Validate checks tile size and pass counts
func (c ProgressiveConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	}
	if c.InitialSamples <= 0 {
		return fmt.Errorf("%w: initial samples %d", ErrInvalidConfig, c.InitialSamples)
	}
	if c.MaxPasses <= 0 {
		return fmt.Errorf("%w: max passes %d", ErrInvalidConfig, c.MaxPasses)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// ProgressiveRaytracer renders the frame in passes of increasing sample count,
// splitting each pass into tiles that are rendered in parallel
type ProgressiveRaytracer struct {
	config     Config
	pconfig    ProgressiveConfig
	tiles      []*Tile
	pixelStats [][]PixelStats // Shared pixel statistics (row 0 at the top)
	pipeline   colorspace.Pipeline
	workerPool *WorkerPool
	logger     log.Logger
}

// NewProgressiveRaytracer creates a progressive raytracer. Every tile draws from its
// own generator seeded with config.Seed plus the tile ID, so the result does not
// depend on how many workers run or in which order tiles finish.
func NewProgressiveRaytracer(tracer Tracer, config Config, pconfig ProgressiveConfig, logger log.Logger) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := pconfig.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("progressive")
	}

	tiles := NewTileGrid(config.Width, config.Height, pconfig.TileSize, config.Seed)
	tileRenderer := NewTileRenderer(tracer, config.camera(), config.Height)

	return &ProgressiveRaytracer{
		config:     config,
		pconfig:    pconfig,
		tiles:      tiles,
		pixelStats: newPixelStatsGrid(config.Width, config.Height),
		pipeline:   colorspace.NewPipeline(config.Exposure),
		workerPool: NewWorkerPool(tileRenderer, len(tiles), pconfig.NumWorkers),
		logger:     logger,
	}, nil
}

// NumPasses returns how many passes RenderProgressive will run
func (pr *ProgressiveRaytracer) NumPasses() int {
	return min(pr.pconfig.MaxPasses, pr.config.SamplesPerPixel)
}

// NumWorkers returns the size of the worker pool
func (pr *ProgressiveRaytracer) NumWorkers() int {
	return pr.workerPool.GetNumWorkers()
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.config.SamplesPerPixel
	passes := pr.NumPasses()

	// Special case: if only 1 pass, use all samples
	if passes == 1 || passNumber >= passes {
		return maxSamples
	}

	initial := min(pr.pconfig.InitialSamples, maxSamples)
	if passNumber <= 1 {
		return initial
	}

	// Divide remaining samples evenly across remaining passes
	samplesPerPass := (maxSamples - initial) / (passes - 1)
	return initial + (passNumber-1)*samplesPerPass
}

// RenderPass renders a single progressive pass using the worker pool
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Infof("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
	}

	// Collect every result so none is left queued for the next pass
	var firstErr error
	for range pr.tiles {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errPoolClosed
		}
		if result.Error != nil {
			pr.logger.Errorf("Tile %d failed: %v", result.TaskID, result.Error)
			if firstErr == nil {
				firstErr = fmt.Errorf("pass %d, tile %d: %w", passNumber, result.TaskID, result.Error)
			}
			continue
		}
		pr.tiles[result.TaskID].PassesCompleted++
		pr.logger.Debugf("Tile %d done: %d samples", result.TaskID, result.Stats.TotalSamples)
	}
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	img, stats := assembleImage(pr.pixelStats, pr.pipeline, targetSamples)
	return img, stats, nil
}

// RenderProgressive runs every pass on a background goroutine. Cancellation is
// checked between passes; a cancelled render reports ctx.Err() on the error channel.
// Both channels are closed when rendering stops.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.Close()

		passes := pr.NumPasses()
		pr.logger.Noticef("Starting progressive rendering with %d passes (%dx%d, %d spp)",
			passes, pr.config.Width, pr.config.Height, pr.config.SamplesPerPixel)

		for pass := 1; pass <= passes; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Warningf("Rendering cancelled before pass %d", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			img, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}
			passTime := time.Since(startTime)

			pr.logger.Infof("Pass %d completed in %v (%.1f samples/pixel)",
				pass, passTime, stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				Duration:   passTime,
				IsLast:     pass == passes,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}

// Close stops the worker pool. It is safe to call more than once; no pass may be
// rendered afterwards.
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

