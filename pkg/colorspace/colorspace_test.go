package colorspace

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestACESFilm_Monotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 1000; i++ {
		x := float64(i) * 0.01
		v := ACESFilm(core.Splat(x)).X
		if v < prev {
			t.Fatalf("ACES curve decreased at x=%f: %f < %f", x, v, prev)
		}
		prev = v
	}
}

func TestACESFilm_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"black", 0, 0},
		{"one", 1, (2.51 + 0.03) / (2.43 + 0.59 + 0.14)},
		{"very bright saturates", 1000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ACESFilm(core.Splat(tt.input)).X
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestLinearToSRGB_Segments(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"linear toe", 0.002, 0.002 * 12.92},
		{"just below threshold", 0.0031, 0.0031 * 12.92},
		{"mid gray", 0.5, math.Pow(0.5, 1/2.4)*1.055 - 0.055},
		{"white", 1, 1},
		{"clamped above", 4, 1},
		{"clamped below", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(core.Splat(tt.input)).X
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		back := SRGBToLinear(LinearToSRGB(core.Splat(x))).X
		if math.Abs(back-x) > 1e-6 {
			t.Errorf("Round trip of %f returned %f", x, back)
		}
	}
}

func TestPipeline_OutputInUnitRange(t *testing.T) {
	p := NewPipeline(DefaultExposure)
	random := rand.New(rand.NewSource(42))

	inputs := []core.Vec3{
		{}, core.Splat(1), core.Splat(1e6), core.NewVec3(0, 5, 1e-9),
		core.Splat(1e150), core.Splat(1e160), core.Splat(1e200),
		core.Splat(math.MaxFloat64), core.NewVec3(math.MaxFloat64, 0, 1),
	}
	for i := 0; i < 1000; i++ {
		inputs = append(inputs, core.NewVec3(random.ExpFloat64(), random.ExpFloat64()*10, random.Float64()))
	}

	for _, in := range inputs {
		out := p.Apply(in)
		for _, c := range []float64{out.X, out.Y, out.Z} {
			if c < 0 || c > 1 || math.IsNaN(c) {
				t.Fatalf("Pipeline output %v for input %v is outside [0,1]", out, in)
			}
		}
	}
}

func TestPipeline_Order(t *testing.T) {
	p := NewPipeline(2)
	in := core.NewVec3(0.1, 0.2, 0.3)
	expected := LinearToSRGB(ACESFilm(in.Multiply(2)))
	if got := p.Apply(in); got != expected {
		t.Errorf("Expected exposure, tone map, encode: %v, got %v", expected, got)
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		input    float64
		expected uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{-1, 0},
		{2, 255},
		{1.0 / 255, 1},
		{0.499 / 255, 0},
	}

	for _, tt := range tests {
		if got := ToByte(tt.input); got != tt.expected {
			t.Errorf("ToByte(%f): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestToRGBA_FromRGBA(t *testing.T) {
	c := ToRGBA(core.NewVec3(0, 0.5, 1))
	if c.R != 0 || c.G != 128 || c.B != 255 || c.A != 255 {
		t.Errorf("Unexpected color %v", c)
	}
	back := FromRGBA(c)
	if math.Abs(back.Y-128.0/255) > 1e-12 {
		t.Errorf("Unexpected decoded value %v", back)
	}
}

func TestACESFilm_LargeInputs(t *testing.T) {
	// Very large radiance saturates to white instead of overflowing
	for _, x := range []float64{1e154, 1e160, 1e300, math.MaxFloat64} {
		got := ACESFilm(core.Splat(x)).X
		if math.IsNaN(got) || got != 1 {
			t.Errorf("ACESFilm(%g) = %v, expected 1", x, got)
		}
		if b := NewPipeline(DefaultExposure).ToRGBA(core.Splat(x)); b.R != 255 {
			t.Errorf("Pipeline byte for %g = %d, expected 255", x, b.R)
		}
	}

	// Both branches agree near the switch point
	below := ACESFilm(core.Splat(math.Nextafter(1, 0))).X
	above := ACESFilm(core.Splat(math.Nextafter(1, 2))).X
	if math.Abs(below-above) > 1e-12 {
		t.Errorf("Curve discontinuous at 1: %v vs %v", below, above)
	}
}
