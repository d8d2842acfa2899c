// Package normalize rescales raw backscatter samples into a bounded target
// range using full-image min-max statistics.
package normalize

import (
	"math"

	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// ErrEmptyData means the raster holds no finite, non-nodata samples, so
// there is nothing to compute statistics over.
var ErrEmptyData = errors.New("raster has no finite, non-nodata samples")

// Normalize maps every finite, non-nodata sample linearly into the scheme's
// target range using the grid-wide minimum and maximum. No-data and
// non-finite cells become the range minimum. A constant raster (min == max)
// maps every valid cell to the range midpoint.
//
// This is a plain linear stretch over whole-image statistics. A single
// outlier pixel compresses the rest of the dynamic range; that sensitivity
// is intentional and matches the product this tool replaces.
func Normalize(src *raster.RawRaster, scheme raster.Scheme) (*raster.NormalizedRaster, error) {
	lo, hi, ok := minMax(src)
	if !ok {
		return nil, ErrEmptyData
	}

	out := &raster.NormalizedRaster{
		Data:   make([]float64, len(src.Data)),
		Width:  src.Width,
		Height: src.Height,
		Scheme: scheme,
	}

	fill := scheme.Min()
	if lo == hi {
		mid := scheme.Mid()
		if scheme == raster.SchemeZeroTo255 {
			mid = math.Round(mid)
		}
		for i, v := range src.Data {
			if usable(src, v) {
				out.Data[i] = mid
			} else {
				out.Data[i] = fill
			}
		}
		return out, nil
	}

	span := hi - lo
	for i, v := range src.Data {
		if !usable(src, v) {
			out.Data[i] = fill
			continue
		}
		t := (v - lo) / span
		switch scheme {
		case raster.SchemeZeroOne:
			out.Data[i] = t
		case raster.SchemeNegOneOne:
			out.Data[i] = 2*t - 1
		case raster.SchemeZeroTo255:
			out.Data[i] = clamp(math.Round(t*255), 0, 255)
		}
	}
	return out, nil
}

// minMax scans the grid once for the extremes of the usable samples.
func minMax(src *raster.RawRaster) (lo, hi float64, ok bool) {
	for _, v := range src.Data {
		if !usable(src, v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

// usable reports whether a sample participates in statistics and rescaling.
func usable(src *raster.RawRaster, v float64) bool {
	return !src.IsNoData(v) && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
