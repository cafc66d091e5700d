package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/wudi/printkit/geom"
)

// Rotate returns img rotated clockwise by the given angle in degrees, with
// the bounds expanded so the rotated raster fits fully. Multiples of 360
// return img itself. Right-angle multiples map output pixels 1:1 onto input
// pixels and are blitted exactly; any other angle resamples with the
// configured filter. The input is never modified.
func Rotate(img image.Image, degrees float64, interp Interpolation) image.Image {
	if math.Mod(degrees, 360) == 0 {
		return img
	}

	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	newW, newH := geom.RotatedSize(srcW, srcH, degrees)
	rad := degrees * math.Pi / 180

	// Spin around the source center, then shift by half the size change so
	// the result lands centered in the expanded bounds. Both halves use
	// integer division.
	m := geom.Translate(float64(-b.Min.X), float64(-b.Min.Y)).
		Multiply(geom.RotateAbout(rad, float64(srcW/2), float64(srcH/2))).
		Multiply(geom.Translate(float64((newW-srcW)/2), float64((newH-srcH)/2)))

	filter := interp.interpolator()
	if math.Mod(degrees, 90) == 0 || interp == Nearest {
		filter = draw.NearestNeighbor
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	filter.Transform(dst, f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}, img, b, draw.Over, nil)
	return dst
}
