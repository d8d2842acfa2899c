// Package encode turns a normalized grid into an 8-bit grayscale PNG.
package encode

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// Render quantizes the grid to 8-bit grayscale pixels. ZeroTo255 grids are
// used as-is; the other schemes rescale analytically from their range to
// [0, 255] before rounding.
func Render(src *raster.NormalizedRaster) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, src.Width, src.Height))

	lo := src.Scheme.Min()
	span := src.Scheme.Max() - lo
	for i, v := range src.Data {
		p := v
		if src.Scheme != raster.SchemeZeroTo255 {
			p = (v - lo) / span * 255
		}
		p = math.Round(p)
		if p < 0 {
			p = 0
		} else if p > 255 {
			p = 255
		}
		img.Pix[i] = uint8(p)
	}
	return img
}

// Bytes renders the grid and serializes it as PNG in memory.
func Bytes(src *raster.NormalizedRaster) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(src)); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the grid to memory first and then writes the file in
// one pass. A failed write removes the partial file, so no truncated PNG is
// ever left behind.
func WriteFile(src *raster.NormalizedRaster, path string) error {
	data, err := Bytes(src)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
