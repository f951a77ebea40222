// Package colorspace turns linear radiance into displayable values:
// exposure, ACES filmic tone mapping, sRGB encoding and 8-bit quantization.
package colorspace

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ACES filmic curve fit (Narkowicz 2015)
const (
	acesA = 2.51
	acesB = 0.03
	acesC = 2.43
	acesD = 0.59
	acesE = 0.14
)

// ACESFilm maps HDR radiance into [0,1] using the ACES filmic curve fit
func ACESFilm(x core.Vec3) core.Vec3 {
	return core.NewVec3(acesFilm(x.X), acesFilm(x.Y), acesFilm(x.Z))
}

func acesFilm(x float64) float64 {
	var v float64
	if x > 1 {
		// Same curve divided through by x², which cannot overflow for large finite x
		v = (acesA + acesB/x) / (acesC + acesD/x + acesE/(x*x))
	} else {
		v = (x * (x*acesA + acesB)) / (x*(x*acesC+acesD) + acesE)
	}
	return max(0, min(1, v))
}

// LinearToSRGB clamps rgb to [0,1] and applies the sRGB transfer curve
func LinearToSRGB(rgb core.Vec3) core.Vec3 {
	rgb = rgb.Saturate()
	curved := rgb.Pow(core.Splat(1.0 / 2.4)).Multiply(1.055).Subtract(core.Splat(0.055))
	return curved.MixVec(rgb.Multiply(12.92), rgb.LessThan(0.0031308))
}

// SRGBToLinear clamps rgb to [0,1] and undoes the sRGB transfer curve
func SRGBToLinear(rgb core.Vec3) core.Vec3 {
	rgb = rgb.Saturate()
	curved := rgb.Add(core.Splat(0.055)).Divide(1.055).Pow(core.Splat(2.4))
	return curved.MixVec(rgb.Divide(12.92), rgb.LessThan(0.04045))
}

// Pipeline applies exposure, tone mapping and sRGB encoding, in that order
type Pipeline struct {
	Exposure float64 // Multiplier applied to radiance before tone mapping
}

// DefaultExposure halves radiance before tone mapping
const DefaultExposure = 0.5

// NewPipeline creates a pipeline with the given exposure
func NewPipeline(exposure float64) Pipeline {
	return Pipeline{Exposure: exposure}
}

// Apply encodes linear radiance into display values in [0,1]
func (p Pipeline) Apply(radiance core.Vec3) core.Vec3 {
	return LinearToSRGB(ACESFilm(radiance.Multiply(p.Exposure)))
}

// ToRGBA encodes radiance and quantizes it to an opaque 8-bit color
func (p Pipeline) ToRGBA(radiance core.Vec3) color.RGBA {
	return ToRGBA(p.Apply(radiance))
}

// ToByte quantizes a display value: round(clamp(x) * 255)
func ToByte(x float64) uint8 {
	return uint8(math.Floor(max(0, min(1, x))*255 + 0.5))
}

// ToRGBA quantizes an encoded color to an opaque 8-bit color
func ToRGBA(encoded core.Vec3) color.RGBA {
	return color.RGBA{
		R: ToByte(encoded.X),
		G: ToByte(encoded.Y),
		B: ToByte(encoded.Z),
		A: 255,
	}
}

// FromRGBA maps an 8-bit color back to encoded values in [0,1]
func FromRGBA(c color.RGBA) core.Vec3 {
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
