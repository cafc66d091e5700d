package scripting

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	"github.com/wudi/printkit/job"
	"github.com/wudi/printkit/raster"
	"github.com/wudi/printkit/render"
)

// GojaEngine runs job scripts on a goja runtime. One engine evaluates one
// script at a time; it is not safe for concurrent use.
type GojaEngine struct {
	vm     *goja.Runtime
	req    *Request
	apiErr error
}

var _ Engine = (*GojaEngine)(nil)

// NewEngine builds a runtime with the print object installed.
func NewEngine() (*GojaEngine, error) {
	e := &GojaEngine{vm: goja.New()}
	obj := e.vm.NewObject()
	bindings := map[string]interface{}{
		"image":         e.addImage,
		"base64":        e.addBase64,
		"scaleToFit":    e.setScaleToFit,
		"rotate":        e.setRotation,
		"interpolation": e.setInterpolation,
		"jobName":       e.setJobName,
	}
	for name, fn := range bindings {
		if err := obj.Set(name, fn); err != nil {
			return nil, fmt.Errorf("bind print.%s: %w", name, err)
		}
	}
	if err := e.vm.Set("print", obj); err != nil {
		return nil, fmt.Errorf("bind print object: %w", err)
	}
	return e, nil
}

// Execute evaluates script against a fresh Request. The context interrupts
// long-running scripts; after an interrupt the engine is reusable.
func (e *GojaEngine) Execute(ctx context.Context, script string) (*Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.req = &Request{Options: job.DefaultOptions()}
	e.apiErr = nil

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := e.vm.RunString(script); err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			if cause := interrupted.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		// a failed print call throws into the script; report the Go-side
		// error rather than its JS wrapping
		if e.apiErr != nil {
			return nil, e.apiErr
		}
		return nil, fmt.Errorf("job script: %w", err)
	}
	if e.apiErr != nil {
		return nil, e.apiErr
	}
	req := e.req
	e.req = nil
	return req, nil
}

func (e *GojaEngine) addImage(ref string) {
	e.req.Sources = append(e.req.Sources, raster.Source{Encoding: raster.EncodingFile, Data: ref})
}

func (e *GojaEngine) addBase64(data string) {
	e.req.Sources = append(e.req.Sources, raster.Source{Encoding: raster.EncodingBase64, Data: data})
}

func (e *GojaEngine) setScaleToFit(v bool) { e.req.Options.ScaleToFit = v }

func (e *GojaEngine) setRotation(degrees float64) { e.req.Options.Rotation = degrees }

func (e *GojaEngine) setJobName(name string) { e.req.Options.JobName = name }

func (e *GojaEngine) setInterpolation(name string) error {
	mode, err := render.ParseInterpolation(name)
	if err != nil {
		e.apiErr = err
		return err
	}
	e.req.Options.Interpolation = mode
	return nil
}
