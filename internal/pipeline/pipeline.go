// Package pipeline sequences one raster conversion: load, normalize,
// optionally calibrate, resample, encode.
package pipeline

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/grdimg/grd2png/internal/encode"
	"github.com/grdimg/grd2png/internal/normalize"
	"github.com/grdimg/grd2png/internal/reader"
	"github.com/grdimg/grd2png/internal/resample"
	"github.com/grdimg/grd2png/pkg/raster"
)

// Options configures one conversion run.
type Options struct {
	Scheme    raster.Scheme
	Bound     raster.BoundingSize
	Band      int  // 1-based, 0 means first band
	Calibrate bool // apply sigma0 dB calibration after normalization
}

// Pipeline converts raster files with a fixed decoding backend. It keeps no
// state between runs.
type Pipeline struct {
	opener reader.Opener
	log    *logrus.Logger
}

func New(opener reader.Opener, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{opener: opener, log: log}
}

// Run converts inPath into a grayscale PNG at outPath. The first failing
// stage aborts the run and is named in the returned error; no partial
// output file survives a failure.
func (p *Pipeline) Run(inPath, outPath string, opts Options) error {
	band := opts.Band
	if band == 0 {
		band = 1
	}

	p.log.Infof("reading band %d of %s", band, inPath)
	src, err := p.opener.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "load")
	}
	raw, err := src.ReadBand(band)
	if cerr := src.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, "load")
	}
	p.log.Debugf("loaded %dx%d %s samples", raw.Width, raw.Height, raw.DType)

	p.log.Infof("normalizing to range %s", opts.Scheme)
	norm, err := normalize.Normalize(raw, opts.Scheme)
	if err != nil {
		return errors.Wrap(err, "normalize")
	}

	if opts.Calibrate {
		p.log.Infof("calibrating with factor %v", raw.CalibrationFactor)
		norm, err = normalize.Calibrate(norm, raw.CalibrationFactor)
		if err != nil {
			return errors.Wrap(err, "calibrate")
		}
	}

	fit, err := resample.Fit(norm, opts.Bound)
	if err != nil {
		return errors.Wrap(err, "resample")
	}
	if fit.Width != norm.Width || fit.Height != norm.Height {
		p.log.Infof("downsampled %dx%d to %dx%d", norm.Width, norm.Height, fit.Width, fit.Height)
	}

	if err := encode.WriteFile(fit, outPath); err != nil {
		return errors.Wrap(err, "write")
	}
	p.log.Infof("wrote %s", outPath)
	return nil
}
