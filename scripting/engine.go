// Package scripting evaluates JavaScript job definitions. A script builds a
// print request by calling the global print object:
//
//	print.jobName("badges");
//	print.scaleToFit(true);
//	print.rotate(90);
//	print.interpolation("nearest-neighbor");
//	print.image("file:///tmp/badge.png");
//	print.base64("iVBORw0KGgo...");
//
// Sources accumulate in call order, which is the print order.
package scripting

import (
	"context"

	"github.com/wudi/printkit/job"
	"github.com/wudi/printkit/raster"
)

// Request is what a job script produces: the image sources to parse and the
// render options to apply to every page.
type Request struct {
	Sources []raster.Source
	Options job.Options
}

// Engine evaluates a job script into a Request.
type Engine interface {
	Execute(ctx context.Context, script string) (*Request, error)
}
