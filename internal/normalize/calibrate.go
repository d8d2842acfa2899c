package normalize

import (
	"math"

	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// logFloor keeps the logarithm defined for zero-amplitude cells.
const logFloor = 1e-10

// Calibrate converts a normalized amplitude grid to radar backscatter in
// decibels (sigma0_db = 10*log10(CF * v^2 + logFloor)) and stretches the
// result back into the grid's scheme range, so downstream stages see the
// same invariants as an uncalibrated raster.
//
// Cells sitting at the range minimum (which is where no-data landed during
// normalization) have zero amplitude, take the lowest dB value, and come
// back out at the range minimum.
func Calibrate(src *raster.NormalizedRaster, factor float64) (*raster.NormalizedRaster, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, errors.Errorf("calibration factor must be positive, got %v", factor)
	}
	if len(src.Data) == 0 {
		return nil, ErrEmptyData
	}

	scheme := src.Scheme
	db := make([]float64, len(src.Data))
	for i, v := range src.Data {
		// Bring the value to unit amplitude in [0, 1].
		var a float64
		switch scheme {
		case raster.SchemeZeroOne:
			a = v
		case raster.SchemeNegOneOne:
			a = (v + 1) / 2
		case raster.SchemeZeroTo255:
			a = v / 255
		}
		db[i] = 10 * math.Log10(factor*a*a+logFloor)
	}

	lo, hi := db[0], db[0]
	for _, v := range db[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := &raster.NormalizedRaster{
		Data:   db,
		Width:  src.Width,
		Height: src.Height,
		Scheme: scheme,
	}
	if lo == hi {
		mid := scheme.Mid()
		if scheme == raster.SchemeZeroTo255 {
			mid = math.Round(mid)
		}
		for i := range db {
			db[i] = mid
		}
		return out, nil
	}

	span := hi - lo
	for i, v := range db {
		t := (v - lo) / span
		switch scheme {
		case raster.SchemeZeroOne:
			db[i] = t
		case raster.SchemeNegOneOne:
			db[i] = 2*t - 1
		case raster.SchemeZeroTo255:
			db[i] = clamp(math.Round(t*255), 0, 255)
		}
	}
	return out, nil
}
