package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 128, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 7, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 128 0\n" +
		"0 0 7\n" +
		"1 2 3\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nexpected:\n%q", buf.String(), expected)
	}
}

func TestWritePPM_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, image.NewRGBA(image.Rect(0, 0, 0, 0))); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}
	if buf.String() != "P3\n0 0\n255\n" {
		t.Errorf("Expected header only, got %q", buf.String())
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	ppmPath := filepath.Join(dir, "out", "frame.ppm")
	if err := Save(ppmPath, img); err != nil {
		t.Fatalf("Save ppm failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("Reading ppm failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("P3\n2 2\n255\n")) {
		t.Errorf("Unexpected PPM header %q", data[:min(len(data), 12)])
	}

	pngPath := filepath.Join(dir, "frame.PNG")
	if err := Save(pngPath, img); err != nil {
		t.Fatalf("Save png failed: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("Opening png failed: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decoding png failed: %v", err)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Errorf("Expected pixel (1,2,3), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.jpg")
	if err := Save(path, testImage()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no file to be created for an unsupported format")
	}
}
