package raster

// RawRaster holds one band of decoded sample values as read from the source
// file. Data is row-major: index = y*Width + x.
type RawRaster struct {
	Data   []float64
	Width  int
	Height int

	// NoData is the band's no-data sentinel, nil if the band has none.
	NoData *float64

	// DType names the source band's storage type (e.g. "Float32", "UInt16").
	DType string

	// CalibrationFactor comes from the CALIBRATION_FACTOR metadata tag,
	// 1.0 when the source carries no such tag.
	CalibrationFactor float64
}

// At returns the sample at x, y without bounds checking.
func (r *RawRaster) At(x, y int) float64 {
	return r.Data[y*r.Width+x]
}

// IsNoData reports whether v equals the raster's no-data sentinel.
func (r *RawRaster) IsNoData(v float64) bool {
	return r.NoData != nil && v == *r.NoData
}

// NormalizedRaster is a grid whose values all lie within the closed target
// range of its Scheme. No-data cells hold the range minimum.
type NormalizedRaster struct {
	Data   []float64
	Width  int
	Height int
	Scheme Scheme
}

// At returns the value at x, y without bounds checking.
func (r *NormalizedRaster) At(x, y int) float64 {
	return r.Data[y*r.Width+x]
}

// BoundingSize is the maximum permitted output size. The resampled image
// fits within it while preserving aspect ratio.
type BoundingSize struct {
	MaxWidth  int
	MaxHeight int
}
