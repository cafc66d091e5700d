package geom

import "math"

// RotatedSize returns the bounding box fully containing a w x h raster
// rotated by the given angle in degrees.
func RotatedSize(w, h int, degrees float64) (int, int) {
	rad := degrees * math.Pi / 180
	sin := math.Abs(math.Sin(rad))
	cos := math.Abs(math.Cos(rad))
	rw := int(math.Floor(float64(w)*cos + float64(h)*sin))
	rh := int(math.Floor(float64(h)*cos + float64(w)*sin))
	return rw, rh
}

// FitSize shrinks or grows a w x h raster to fit inside boundW x boundH
// while preserving aspect ratio. Exactly one axis lands on its bound; a
// source and bound with equal aspect ratios clamp the width axis.
func FitSize(w, h int, boundW, boundH float64) (int, int) {
	if float64(w)/float64(h) >= boundW/boundH {
		return int(boundW), int(float64(h) / (float64(w) / boundW))
	}
	return int(float64(w) / (float64(h) / boundH)), int(boundH)
}
