package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/colorspace"
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int     // Total number of pixels rendered
	TotalSamples     int     // Total number of samples taken
	AverageSamples   float64 // Average samples per pixel
	MaxSamples       int     // Target samples per pixel
	MinSamples       int     // Minimum samples taken per pixel
	MaxSamplesUsed   int     // Maximum samples actually used by any pixel
	AverageLuminance float64 // Mean linear luminance of the encoded image
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Sum of linear radiance samples
	SampleCount int       // Number of samples taken
}

// AddSample adds a new radiance sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average radiance for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// newPixelStatsGrid allocates a height x width grid indexed [row][column], row 0 at the top
func newPixelStatsGrid(width, height int) [][]PixelStats {
	grid := make([][]PixelStats, height)
	for y := range grid {
		grid[y] = make([]PixelStats, width)
	}
	return grid
}

// assembleImage encodes every pixel through pipeline and gathers sample statistics
func assembleImage(grid [][]PixelStats, pipeline colorspace.Pipeline, targetSamples int) (*image.RGBA, RenderStats) {
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	stats := RenderStats{
		TotalPixels: width * height,
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}
	if stats.TotalPixels > 0 {
		stats.MinSamples = grid[0][0].SampleCount
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := &grid[y][x]
			img.SetRGBA(x, y, pipeline.ToRGBA(pixel.GetColor()))

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	stats.AverageLuminance = CalculateAverageLuminance(img)

	return img, stats
}

// CalculateAverageLuminance decodes every sRGB pixel back to linear light
// and returns the mean Rec. 709 luminance
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			encoded := colorspace.FromRGBA(img.RGBAAt(x, y))
			total += colorspace.SRGBToLinear(encoded).Luminance()
		}
	}
	return total / float64(count)
}
