// Package spool drives a parsed print job through a printer boundary, one
// page at a time, in ascending order, the way a host print subsystem pulls
// pages from a rendering core. Output backends implement Printer; anything
// that can count and render pages implements Document.
package spool

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/job"
	"github.com/wudi/printkit/observability"
)

// Status is the page-existence protocol spoken with a host spooler.
type Status int

const (
	// PageExists reports that the queried page index has content.
	PageExists Status = iota
	// NoSuchPage reports that the document ended before the queried index.
	NoSuchPage
)

func (s Status) String() string {
	if s == PageExists {
		return "PAGE_EXISTS"
	}
	return "NO_SUCH_PAGE"
}

// Document is a paginated source of rendered canvases. *job.Job satisfies it.
type Document interface {
	PageCount() int
	RenderPage(index int, area geom.Imageable) (*image.NRGBA, bool, error)
}

// Printer is the opaque print-output handle: a destination that accepts a
// job's pages. Implementations decide what a page physically becomes.
type Printer interface {
	// Format describes the page the printer produces.
	Format() geom.PageFormat
	// BeginJob opens a named job on the destination.
	BeginJob(name string) error
	// PrintPage receives the canvas for document page index. Backends keep
	// their own output ordinal, so repeated runs of a document append
	// rather than overwrite.
	PrintPage(index int, canvas image.Image) error
	// EndJob finalizes the destination output.
	EndJob() error
}

// Copies decides how many times the document is run for one job. Copy
// handling lives outside the rendering core; this is its boundary.
type Copies interface {
	Runs(opts job.Options) int
}

// SingleCopy prints the document exactly once.
type SingleCopy struct{}

func (SingleCopy) Runs(job.Options) int { return 1 }

// RenderStatus adapts a document to the two-valued protocol shape for
// hosts that speak it directly. The status is NoSuchPage whenever no
// canvas is returned, including on error.
func RenderStatus(doc Document, index int, area geom.Imageable) (*image.NRGBA, Status, error) {
	canvas, ok, err := doc.RenderPage(index, area)
	if err != nil || !ok {
		return nil, NoSuchPage, err
	}
	return canvas, PageExists, nil
}

// Print runs doc through prn once. See PrintCopies.
func Print(ctx context.Context, prn Printer, doc Document, opts job.Options, log observability.Logger) error {
	return PrintCopies(ctx, prn, doc, opts, SingleCopy{}, log)
}

// PrintCopies drives the full print loop: it derives the job name, asks the
// printer for its page format, and queries doc strictly sequentially from
// page 0 until NoSuchPage, repeating the document as many times as copies
// asks (fewer than one run is treated as one). An empty document is not an
// error: it logs a warning and performs no printer calls at all. A nil
// printer or document is caller misuse and fails with a ContractError.
// Cancellation is honored between pages only; a page in flight completes.
func PrintCopies(ctx context.Context, prn Printer, doc Document, opts job.Options, copies Copies, log observability.Logger) error {
	if prn == nil {
		return &job.ContractError{Msg: "print invoked with a nil printer"}
	}
	if doc == nil {
		return &job.ContractError{Msg: "print invoked with a nil document"}
	}
	if log == nil {
		log = observability.NopLogger{}
	}
	if copies == nil {
		copies = SingleCopy{}
	}
	if doc.PageCount() == 0 {
		log.Warn("nothing to print")
		return nil
	}

	start := time.Now()
	name := opts.DeriveJobName()
	area := prn.Format().Imageable
	runs := copies.Runs(opts)
	if runs < 1 {
		runs = 1
	}

	if err := prn.BeginJob(name); err != nil {
		return fmt.Errorf("begin job %q: %w", name, err)
	}
	rendered := 0
	for run := 0; run < runs; run++ {
		for index := 0; ; index++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			canvas, ok, err := doc.RenderPage(index, area)
			if err != nil {
				return fmt.Errorf("render page %d: %w", index, err)
			}
			if !ok {
				break
			}
			if err := prn.PrintPage(index, canvas); err != nil {
				return fmt.Errorf("print page %d: %w", index, err)
			}
			rendered++
		}
	}
	if err := prn.EndJob(); err != nil {
		return fmt.Errorf("end job %q: %w", name, err)
	}
	log.Info("printed job",
		observability.String("job", name),
		observability.Int(observability.MetricPagesRendered, rendered),
		observability.Duration(observability.MetricJobTime, time.Since(start)),
	)
	return nil
}
