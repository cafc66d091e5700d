// Package pngdir prints a job as numbered PNG files in a directory, one
// file per page. Useful as a spooler stand-in when inspecting rendered
// pages directly matters more than a print-ready document.
package pngdir

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/spool"
)

// Printer writes pages as page-0001.png, page-0002.png, ... under its
// directory, numbering across all runs of one job so copies never clobber
// earlier pages.
type Printer struct {
	dir     string
	format  geom.PageFormat
	perJob  bool
	jobDir  string
	written int
}

var _ spool.Printer = (*Printer)(nil)

// Option configures a Printer.
type Option func(*Printer)

// WithFormat sets the page format. Default is Letter with no margin.
func WithFormat(f geom.PageFormat) Option {
	return func(p *Printer) { p.format = f }
}

// WithJobSubdir writes each job into a subdirectory named after the job.
func WithJobSubdir() Option {
	return func(p *Printer) { p.perJob = true }
}

// New returns a Printer writing under dir. The directory is created when
// the job begins.
func New(dir string, opts ...Option) *Printer {
	p := &Printer{dir: dir, format: geom.Letter()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Format() geom.PageFormat { return p.format }

func (p *Printer) BeginJob(name string) error {
	p.written = 0
	p.jobDir = p.dir
	if p.perJob {
		p.jobDir = filepath.Join(p.dir, sanitize(name))
	}
	if err := os.MkdirAll(p.jobDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", p.jobDir, err)
	}
	return nil
}

func (p *Printer) PrintPage(_ int, canvas image.Image) error {
	p.written++
	path := filepath.Join(p.jobDir, fmt.Sprintf("page-%04d.png", p.written))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, canvas); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (p *Printer) EndJob() error { return nil }

// sanitize keeps job names usable as directory names.
func sanitize(name string) string {
	if name == "" {
		return "job"
	}
	r := strings.NewReplacer("/", "-", string(filepath.Separator), "-", " ", "-")
	return r.Replace(name)
}
