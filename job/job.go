// Package job holds the state of one print job: the ordered rasters parsed
// from their sources and the render options applied to every page. Page
// index i always renders source image i; pagination is stateless, so every
// page is computable from its index alone.
//
// A Job is driven synchronously, one page at a time, and is not safe for
// concurrent use. Callers that paginate from multiple goroutines must add
// their own locking around the whole Job.
package job

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/observability"
	"github.com/wudi/printkit/raster"
	"github.com/wudi/printkit/render"
)

// State tracks where a job is in its lifecycle.
type State string

const (
	// StateIdle means no job is active; Parse may be called.
	StateIdle State = "idle"
	// StateReady means rasters are loaded and the options snapshot taken.
	StateReady State = "ready"
	// StatePaginating means the host has started querying pages.
	StatePaginating State = "paginating"
)

// Job owns the rasters and options of a single print job.
type Job struct {
	id     string
	state  State
	images []image.Image
	opts   Options
	loader *raster.Loader
	log    observability.Logger
}

// Option configures a Job.
type Option func(*Job)

// WithLogger routes the job's diagnostics to log.
func WithLogger(log observability.Logger) Option {
	return func(j *Job) { j.log = log }
}

// WithLoader substitutes the raster loader used by Parse.
func WithLoader(l *raster.Loader) Option {
	return func(j *Job) { j.loader = l }
}

// New returns an idle job with default options.
func New(opts ...Option) *Job {
	j := &Job{
		state:  StateIdle,
		opts:   DefaultOptions(),
		loader: raster.NewLoader(),
		log:    observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// ID returns the identifier assigned by the last successful Parse, or ""
// while the job is idle.
func (j *Job) ID() string { return j.id }

// State returns the job's lifecycle state.
func (j *Job) State() State { return j.state }

// Options returns the render options captured at Parse time.
func (j *Job) Options() Options { return j.opts }

// PageCount returns the number of pages the job produces: one per image.
func (j *Job) PageCount() int { return len(j.images) }

// Parse decodes sources into the job's raster list, in order, and captures
// opts for the whole job. It is all or nothing: the first failing source
// aborts the parse and the job stays idle with no rasters. A job that has
// already parsed must be cleaned up before it can parse again.
func (j *Job) Parse(ctx context.Context, sources []raster.Source, opts Options) error {
	if j.state != StateIdle {
		return &ContractError{Msg: fmt.Sprintf("parse while %s: a new job must wait for the previous job's cleanup", j.state)}
	}
	start := time.Now()
	images, err := j.loader.Load(ctx, sources)
	if err != nil {
		return err
	}
	j.id = uuid.NewString()
	j.images = images
	j.opts = opts
	j.state = StateReady
	j.log.Debug("parsed images for printing",
		observability.String("job_id", j.id),
		observability.Int(observability.MetricImageCount, len(images)),
		observability.Duration(observability.MetricParseTime, time.Since(start)),
	)
	return nil
}

// RenderPage renders page index onto a canvas sized for area. The second
// return reports page existence: false means index is past the last page,
// which ends the document and is not an error. A negative index or
// unusable geometry is host misuse and fails with a ContractError.
func (j *Job) RenderPage(index int, area geom.Imageable) (*image.NRGBA, bool, error) {
	if index < 0 {
		return nil, false, &ContractError{Msg: fmt.Sprintf("negative page index %d", index)}
	}
	if !area.Valid() {
		return nil, false, &ContractError{Msg: fmt.Sprintf("imageable area %+v is not printable", area)}
	}
	if index >= len(j.images) {
		return nil, false, nil
	}
	start := time.Now()
	j.state = StatePaginating
	j.log.Debug("rendering page",
		observability.String("job_id", j.id),
		observability.Int("page", index),
	)

	img := render.Rotate(j.images[index], j.opts.Rotation, j.opts.Interpolation)
	b := img.Bounds()
	targetW, targetH := b.Dx(), b.Dy()
	if j.opts.ScaleToFit {
		targetW, targetH = geom.FitSize(targetW, targetH, area.Width, area.Height)
	}
	j.log.Debug("paper area",
		observability.Float64("x", area.X),
		observability.Float64("y", area.Y),
		observability.Float64("width", area.Width),
		observability.Float64("height", area.Height),
		observability.Int("image_width", targetW),
		observability.Int("image_height", targetH),
	)
	canvas := render.ComposePage(img, targetW, targetH, area, j.opts.Interpolation)
	j.log.Debug("rendered page",
		observability.Int("page", index),
		observability.Duration(observability.MetricPageTime, time.Since(start)),
	)
	return canvas, true, nil
}

// Cleanup returns the job to idle: the raster list is dropped and options
// reset to defaults. It is idempotent and safe to call at any point, even
// before the first Parse or after a failed one.
func (j *Job) Cleanup() {
	j.id = ""
	j.images = nil
	j.opts = DefaultOptions()
	j.state = StateIdle
}
