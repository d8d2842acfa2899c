package grdmeta

import (
	"testing"
	"time"
)

func TestFromPath(t *testing.T) {
	meta, ok := FromPath("data/input/ICEYE_X4_GRD_SM_9281_20190903T144946.tif")
	if !ok {
		t.Fatal("expected filename to parse")
	}
	if meta.AcquisitionID != "9281" {
		t.Errorf("got ID %q, want 9281", meta.AcquisitionID)
	}
	if meta.Mode != "SM" {
		t.Errorf("got mode %q, want SM", meta.Mode)
	}
	want := time.Date(2019, 9, 3, 14, 49, 46, 0, time.UTC)
	if !meta.Timestamp.Equal(want) {
		t.Errorf("got timestamp %v, want %v", meta.Timestamp, want)
	}
}

func TestFromPathSpotlight(t *testing.T) {
	meta, ok := FromPath("ICEYE_X12_GRD_SL_102_20220101T000000.tiff")
	if !ok {
		t.Fatal("expected filename to parse")
	}
	if meta.Mode != "SL" || meta.AcquisitionID != "102" {
		t.Errorf("got %+v", meta)
	}
}

func TestFromPathNonConforming(t *testing.T) {
	names := []string{
		"scene.tif",
		"ICEYE_X4_SLC_SM_9281_20190903T144946.tif",
		"ICEYE_X4_GRD_XX_9281_20190903T144946.tif",
	}
	for _, name := range names {
		if _, ok := FromPath(name); ok {
			t.Errorf("%s: expected no match", name)
		}
	}
}
