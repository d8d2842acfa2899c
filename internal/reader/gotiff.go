package reader

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/tiff"

	"github.com/grdimg/grd2png/pkg/raster"
)

type tiffOpener struct{}

// TIFF returns a pure-Go Opener built on golang.org/x/image/tiff. It covers
// plain grayscale TIFFs without needing the GDAL shared library, which is
// enough for testing and for simple 8/16-bit products.
func TIFF() Opener {
	return tiffOpener{}
}

func (tiffOpener) Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &tiffSource{img: img}, nil
}

// tiffSource holds the fully decoded image; the file handle is already
// released by the time Open returns.
type tiffSource struct {
	img image.Image
}

func (s *tiffSource) BandCount() int {
	return 1
}

func (s *tiffSource) ReadBand(band int) (*raster.RawRaster, error) {
	if band != 1 {
		return nil, errors.Wrapf(ErrBandRange, "band %d of 1", band)
	}

	bounds := s.img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	buf := make([]float64, w*h)

	rr := &raster.RawRaster{
		Data:              buf,
		Width:             w,
		Height:            h,
		CalibrationFactor: 1.0,
	}

	switch img := s.img.(type) {
	case *image.Gray:
		rr.DType = "UInt8"
		for y := 0; y < h; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w]
			for x, v := range row {
				buf[y*w+x] = float64(v)
			}
		}
	case *image.Gray16:
		rr.DType = "UInt16"
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := y*img.Stride + x*2
				buf[y*w+x] = float64(uint16(img.Pix[off])<<8 | uint16(img.Pix[off+1]))
			}
		}
	default:
		// Color sources collapse to 8-bit luminance.
		rr.DType = "UInt8"
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := s.img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				lum := (299*r + 587*g + 114*b) / 1000
				buf[y*w+x] = float64(lum >> 8)
			}
		}
	}
	return rr, nil
}

func (s *tiffSource) Close() error {
	return nil
}
