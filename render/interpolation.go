package render

import (
	"fmt"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation selects the resampling filter applied whenever output pixels
// do not map one to one onto input pixels.
type Interpolation int

const (
	// Bicubic is the default, highest quality filter.
	Bicubic Interpolation = iota
	Bilinear
	Nearest
)

func (i Interpolation) String() string {
	switch i {
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest-neighbor"
	default:
		return "bicubic"
	}
}

// ParseInterpolation maps an option string to an Interpolation. The empty
// string selects the default.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(name) {
	case "", "bicubic":
		return Bicubic, nil
	case "bilinear":
		return Bilinear, nil
	case "nearest-neighbor":
		return Nearest, nil
	}
	return Bicubic, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) interpolator() draw.Interpolator {
	switch i {
	case Bilinear:
		return draw.BiLinear
	case Nearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}
