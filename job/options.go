package job

import "github.com/wudi/printkit/render"

// DefaultJobName labels jobs printed without an explicit name.
const DefaultJobName = "Image Print"

// Options configure how every page of a job is rendered. They are captured
// once at Parse time and applied uniformly to each page.
type Options struct {
	// ScaleToFit resizes each image, preserving aspect ratio, so it fits
	// inside the page's imageable area. When false the image keeps its
	// native pixel dimensions.
	ScaleToFit bool
	// Interpolation selects the resampling filter used for rotation and
	// compositing. The zero value is bicubic.
	Interpolation render.Interpolation
	// Rotation in degrees, applied to each image before scaling.
	Rotation float64
	// JobName names the job at the spooler. Empty means DefaultJobName.
	JobName string
}

// DefaultOptions returns the options a cleaned-up job resets to: scaling
// off, no rotation, bicubic interpolation, no name.
func DefaultOptions() Options { return Options{} }

// DeriveJobName resolves the name handed to the spooler.
func (o Options) DeriveJobName() string {
	if o.JobName != "" {
		return o.JobName
	}
	return DefaultJobName
}
