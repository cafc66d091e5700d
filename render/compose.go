package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/wudi/printkit/geom"
)

// ComposePage scales img to targetW x targetH and draws it at the imageable
// origin of a fresh page canvas. The canvas spans the imageable offset plus
// the scaled image, so its coordinates are absolute page coordinates. The
// input is never modified.
func ComposePage(img image.Image, targetW, targetH int, area geom.Imageable, interp Interpolation) *image.NRGBA {
	x, y := int(area.X), int(area.Y)
	canvas := image.NewNRGBA(image.Rect(0, 0, x+targetW, y+targetH))
	target := image.Rect(x, y, x+targetW, y+targetH)
	interp.interpolator().Scale(canvas, target, img, img.Bounds(), draw.Over, nil)
	return canvas
}
