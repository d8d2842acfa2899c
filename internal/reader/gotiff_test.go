package reader

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

func mustWriteGrayTIFF(t *testing.T, w, h int, fill func(x, y int) uint8) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = fill(x, y)
		}
	}

	path := filepath.Join(t.TempDir(), "band.tif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating tiff: %v", err)
	}
	defer f.Close()
	if err := tiff.Encode(f, img, nil); err != nil {
		t.Fatalf("encoding tiff: %v", err)
	}
	return path
}

func TestTIFFReadBand(t *testing.T) {
	path := mustWriteGrayTIFF(t, 4, 3, func(x, y int) uint8 {
		return uint8(y*4 + x)
	})

	src, err := TIFF().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if src.BandCount() != 1 {
		t.Fatalf("got %d bands, want 1", src.BandCount())
	}

	raw, err := src.ReadBand(1)
	if err != nil {
		t.Fatalf("ReadBand failed: %v", err)
	}
	if raw.Width != 4 || raw.Height != 3 {
		t.Fatalf("got %dx%d, want 4x3", raw.Width, raw.Height)
	}
	if raw.DType != "UInt8" {
		t.Errorf("got dtype %q, want UInt8", raw.DType)
	}
	if raw.CalibrationFactor != 1 {
		t.Errorf("got calibration factor %v, want 1", raw.CalibrationFactor)
	}
	for i, v := range raw.Data {
		if v != float64(i) {
			t.Fatalf("cell %d: got %v, want %d", i, v, i)
		}
	}
}

func TestTIFFReadBandOutOfRange(t *testing.T) {
	path := mustWriteGrayTIFF(t, 2, 2, func(x, y int) uint8 { return 0 })

	src, err := TIFF().Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if _, err := src.ReadBand(2); !errors.Is(err, ErrBandRange) {
		t.Fatalf("got %v, want ErrBandRange", err)
	}
}

func TestTIFFOpenMissingFile(t *testing.T) {
	if _, err := TIFF().Open(filepath.Join(t.TempDir(), "nope.tif")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestForDriver(t *testing.T) {
	if _, err := ForDriver(DriverTIFF); err != nil {
		t.Errorf("tiff driver: %v", err)
	}
	if _, err := ForDriver(DriverGDAL); err != nil {
		t.Errorf("gdal driver: %v", err)
	}
	if _, err := ForDriver("netcdf"); err == nil {
		t.Error("expected error for unknown driver")
	}
}
