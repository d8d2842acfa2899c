// Package grdmeta extracts product metadata from GRD filename conventions.
package grdmeta

import (
	"path/filepath"
	"regexp"
	"time"
)

// Meta is what a conforming GRD product name encodes.
type Meta struct {
	AcquisitionID string
	Mode          string // SM = stripmap, SL = spotlight
	Timestamp     time.Time
}

// e.g. ICEYE_X4_GRD_SM_9281_20190903T144946.tif
var namePattern = regexp.MustCompile(`ICEYE_X\d+_GRD_(SM|SL)_(\d+)_(\d{8}T\d{6})`)

const timestampLayout = "20060102T150405"

// FromPath parses the base name of path. ok is false when the name does not
// follow the ICEYE GRD convention; that is not an error, plenty of valid
// rasters have arbitrary names.
func FromPath(path string) (Meta, bool) {
	m := namePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Meta{}, false
	}
	ts, err := time.Parse(timestampLayout, m[3])
	if err != nil {
		return Meta{}, false
	}
	return Meta{
		AcquisitionID: m[2],
		Mode:          m[1],
		Timestamp:     ts.UTC(),
	}, true
}
