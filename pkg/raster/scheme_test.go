package raster

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		token string
		want  Scheme
	}{
		{"0-1", SchemeZeroOne},
		{"-1-1", SchemeNegOneOne},
		{"0-255", SchemeZeroTo255},
	}
	for _, tc := range tests {
		got, err := ParseScheme(tc.token)
		if err != nil {
			t.Fatalf("%s: %v", tc.token, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestParseSchemeInvalid(t *testing.T) {
	for _, token := range []string{"bogus", "", "0 - 1", "0-256"} {
		if _, err := ParseScheme(token); !errors.Is(err, ErrInvalidScheme) {
			t.Errorf("%q: got %v, want ErrInvalidScheme", token, err)
		}
	}
}

func TestSchemeRanges(t *testing.T) {
	tests := []struct {
		scheme        Scheme
		min, max, mid float64
	}{
		{SchemeZeroOne, 0, 1, 0.5},
		{SchemeNegOneOne, -1, 1, 0},
		{SchemeZeroTo255, 0, 255, 127.5},
	}
	for _, tc := range tests {
		if tc.scheme.Min() != tc.min || tc.scheme.Max() != tc.max || tc.scheme.Mid() != tc.mid {
			t.Errorf("%s: got (%v, %v, %v), want (%v, %v, %v)", tc.scheme,
				tc.scheme.Min(), tc.scheme.Max(), tc.scheme.Mid(), tc.min, tc.max, tc.mid)
		}
	}
}

func TestSchemeTokenRoundTrip(t *testing.T) {
	for _, s := range []Scheme{SchemeZeroOne, SchemeNegOneOne, SchemeZeroTo255} {
		got, err := ParseScheme(s.Token())
		if err != nil || got != s {
			t.Errorf("%s: round trip got %v, %v", s, got, err)
		}
	}
}
