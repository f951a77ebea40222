package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// TileRenderer renders rectangular regions of the shared pixel grid
type TileRenderer struct {
	tracer Tracer
	camera *Camera
	height int
}

// NewTileRenderer creates a tile renderer. It holds no mutable state and may be shared by workers.
func NewTileRenderer(tracer Tracer, camera *Camera, height int) *TileRenderer {
	return &TileRenderer{
		tracer: tracer,
		camera: camera,
		height: height,
	}
}

// ErrTileOutOfBounds is returned when a tile does not fit inside the pixel grid
var ErrTileOutOfBounds = errors.New("renderer: tile out of bounds")

// RenderTileBounds tops up every pixel within bounds to targetSamples.
// Bounds are in image coordinates with row 0 at the top and must lie inside
// pixelStats, whose height must match the camera's.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) (RenderStats, error) {
	if len(pixelStats) != tr.height {
		return RenderStats{}, fmt.Errorf("%w: grid has %d rows, camera expects %d", ErrTileOutOfBounds, len(pixelStats), tr.height)
	}
	width := 0
	if tr.height > 0 {
		width = len(pixelStats[0])
	}
	if !bounds.In(image.Rect(0, 0, width, tr.height)) {
		return RenderStats{}, fmt.Errorf("%w: %v outside %dx%d", ErrTileOutOfBounds, bounds, width, tr.height)
	}

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	// Rows bottom-up, matching Raytracer.RenderPass; camera rows count from the bottom
	for j := bounds.Max.Y - 1; j >= bounds.Min.Y; j-- {
		cameraY := tr.height - 1 - j
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.samplePixel(i, cameraY, &pixelStats[j][i], sampler, targetSamples)
			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// samplePixel traces paths until the pixel holds targetSamples; returns how many were added
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	initialSampleCount := ps.SampleCount
	for ps.SampleCount < targetSamples {
		ray := tr.camera.GetRay(x, y, sampler)
		ps.AddSample(tr.tracer.Trace(ray, sampler))
	}
	return ps.SampleCount - initialSampleCount
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific random source for deterministic results
}

// NewTile creates a tile whose sampler is seeded from seed and the tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
