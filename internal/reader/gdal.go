package reader

import (
	"strconv"

	"github.com/lukeroth/gdal"
	"github.com/pkg/errors"

	"github.com/grdimg/grd2png/pkg/raster"
)

// calibrationTag is the dataset metadata item holding the radiometric
// calibration factor, when the product carries one.
const calibrationTag = "CALIBRATION_FACTOR"

type gdalOpener struct{}

// GDAL returns the Opener backed by the GDAL library. It understands every
// GeoTIFF variant GDAL does, including tiled and compressed GRD products.
func GDAL() Opener {
	return gdalOpener{}
}

func (gdalOpener) Open(path string) (Source, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return &gdalSource{ds: ds}, nil
}

type gdalSource struct {
	ds gdal.Dataset
}

func (s *gdalSource) BandCount() int {
	return s.ds.RasterCount()
}

func (s *gdalSource) ReadBand(band int) (*raster.RawRaster, error) {
	count := s.ds.RasterCount()
	if count == 0 {
		return nil, ErrNoBands
	}
	if band < 1 || band > count {
		return nil, errors.Wrapf(ErrBandRange, "band %d of %d", band, count)
	}

	w := s.ds.RasterXSize()
	h := s.ds.RasterYSize()
	b := s.ds.RasterBand(band)

	// GDAL converts whatever the band's storage type is to float64 here.
	buf := make([]float64, w*h)
	if err := b.IO(gdal.Read, 0, 0, w, h, buf, w, h, 0, 0); err != nil {
		return nil, errors.Wrapf(err, "read band %d", band)
	}

	rr := &raster.RawRaster{
		Data:              buf,
		Width:             w,
		Height:            h,
		DType:             b.RasterDataType().Name(),
		CalibrationFactor: 1.0,
	}
	if nd, ok := b.NoDataValue(); ok {
		rr.NoData = &nd
	}
	if tag := s.ds.MetadataItem(calibrationTag, ""); tag != "" {
		if cf, err := strconv.ParseFloat(tag, 64); err == nil {
			rr.CalibrationFactor = cf
		}
	}
	return rr, nil
}

func (s *gdalSource) Close() error {
	s.ds.Close()
	return nil
}
