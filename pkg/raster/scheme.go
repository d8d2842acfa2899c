package raster

import (
	"fmt"

	"github.com/pkg/errors"
)

// Scheme selects the normalization target range.
type Scheme int

const (
	SchemeZeroOne Scheme = iota // values in [0, 1]
	SchemeNegOneOne             // values in [-1, 1]
	SchemeZeroTo255             // values in [0, 255], already quantized
)

// ErrInvalidScheme is returned for an unrecognized normalization token.
var ErrInvalidScheme = errors.New(`invalid normalization format, choose from "0-1", "-1-1" or "0-255"`)

// ParseScheme maps a command-line token to a Scheme.
func ParseScheme(token string) (Scheme, error) {
	switch token {
	case "0-1":
		return SchemeZeroOne, nil
	case "-1-1":
		return SchemeNegOneOne, nil
	case "0-255":
		return SchemeZeroTo255, nil
	}
	return 0, errors.Wrapf(ErrInvalidScheme, "%q", token)
}

// Min returns the lower bound of the scheme's target range.
func (s Scheme) Min() float64 {
	if s == SchemeNegOneOne {
		return -1
	}
	return 0
}

// Max returns the upper bound of the scheme's target range.
func (s Scheme) Max() float64 {
	switch s {
	case SchemeNegOneOne, SchemeZeroOne:
		return 1
	case SchemeZeroTo255:
		return 255
	}
	return 1
}

// Mid returns the midpoint of the target range, used for constant rasters.
func (s Scheme) Mid() float64 {
	return (s.Min() + s.Max()) / 2
}

// Token returns the command-line form of the scheme.
func (s Scheme) Token() string {
	switch s {
	case SchemeZeroOne:
		return "0-1"
	case SchemeNegOneOne:
		return "-1-1"
	case SchemeZeroTo255:
		return "0-255"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

func (s Scheme) String() string {
	return s.Token()
}
