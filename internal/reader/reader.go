// Package reader wraps raster-decoding backends behind a narrow
// open/read-band/close interface so the normalization core never touches a
// decoder's object model directly.
package reader

import (
	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// Driver names accepted by ForDriver.
const (
	DriverGDAL = "gdal"
	DriverTIFF = "tiff"
)

var (
	// ErrNoBands means the source file contains no raster bands.
	ErrNoBands = errors.New("source contains no raster bands")

	// ErrBandRange means the requested band index does not exist.
	ErrBandRange = errors.New("band index out of range")
)

// Source is one open raster file. Close must be called on every path once
// Open succeeds; it releases the underlying file handle.
type Source interface {
	// BandCount returns the number of raster bands in the file.
	BandCount() int

	// ReadBand decodes the 1-based band into a RawRaster.
	ReadBand(band int) (*raster.RawRaster, error)

	Close() error
}

// Opener opens raster files with a particular decoding backend.
type Opener interface {
	Open(path string) (Source, error)
}

// ForDriver returns the Opener for a driver name.
func ForDriver(name string) (Opener, error) {
	switch name {
	case DriverGDAL:
		return GDAL(), nil
	case DriverTIFF:
		return TIFF(), nil
	}
	return nil, errors.Errorf("unknown raster driver %q (choose gdal or tiff)", name)
}
