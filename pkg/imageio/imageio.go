// Package imageio writes rendered frames to disk.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Save for file extensions it cannot encode
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// WritePPM writes img as an ASCII (P3) PPM, top row first, one pixel per line
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WritePNG writes img as a PNG
func WritePNG(w io.Writer, img *image.RGBA) error {
	return png.Encode(w, img)
}

// Save writes img to path, choosing the encoder from the file extension
func Save(path string, img *image.RGBA) (err error) {
	var encode func(io.Writer, *image.RGBA) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		encode = WritePPM
	case ".png":
		encode = WritePNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("imageio: creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return encode(f, img)
}
