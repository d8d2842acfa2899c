// Package resample shrinks a normalized grid to fit inside a bounding size
// while preserving aspect ratio. It never enlarges.
package resample

import (
	"math"

	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// ErrInvalidBounds is returned when either bounding dimension is <= 0.
var ErrInvalidBounds = errors.New("bounding size dimensions must be positive")

// Fit scales src down so both dimensions fit within bound. The scale factor
// is min(maxW/w, maxH/h) capped at 1, so a grid already inside the bound is
// returned unchanged. Dimensions round to the nearest integer, never below 1.
func Fit(src *raster.NormalizedRaster, bound raster.BoundingSize) (*raster.NormalizedRaster, error) {
	if bound.MaxWidth <= 0 || bound.MaxHeight <= 0 {
		return nil, errors.Wrapf(ErrInvalidBounds, "%dx%d", bound.MaxWidth, bound.MaxHeight)
	}

	scale := math.Min(
		float64(bound.MaxWidth)/float64(src.Width),
		float64(bound.MaxHeight)/float64(src.Height),
	)
	if scale >= 1 {
		return src, nil
	}

	w := int(math.Round(float64(src.Width) * scale))
	h := int(math.Round(float64(src.Height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return shrink(src, w, h), nil
}

// shrink does area-weighted box filtering: each destination pixel is the
// average of the source rectangle it covers, with fractional coverage at the
// edges. Averaging keeps the low-frequency intensity structure of the source
// and stays inside the scheme's range by construction.
func shrink(src *raster.NormalizedRaster, w, h int) *raster.NormalizedRaster {
	out := &raster.NormalizedRaster{
		Data:   make([]float64, w*h),
		Width:  w,
		Height: h,
		Scheme: src.Scheme,
	}

	xRatio := float64(src.Width) / float64(w)
	yRatio := float64(src.Height) / float64(h)

	for dy := 0; dy < h; dy++ {
		y0 := float64(dy) * yRatio
		y1 := math.Min(y0+yRatio, float64(src.Height))
		for dx := 0; dx < w; dx++ {
			x0 := float64(dx) * xRatio
			x1 := math.Min(x0+xRatio, float64(src.Width))

			var sum, area float64
			for sy := int(y0); sy < src.Height && float64(sy) < y1; sy++ {
				wy := overlap(float64(sy), float64(sy)+1, y0, y1)
				for sx := int(x0); sx < src.Width && float64(sx) < x1; sx++ {
					wx := overlap(float64(sx), float64(sx)+1, x0, x1)
					sum += src.At(sx, sy) * wx * wy
					area += wx * wy
				}
			}
			if area > 0 {
				out.Data[dy*w+dx] = sum / area
			}
		}
	}

	if src.Scheme == raster.SchemeZeroTo255 {
		// Averaging breaks the already-quantized property; restore it.
		for i, v := range out.Data {
			out.Data[i] = math.Round(v)
		}
	}
	return out
}

// overlap returns the length of the intersection of [a0,a1) and [b0,b1).
func overlap(a0, a1, b0, b1 float64) float64 {
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
