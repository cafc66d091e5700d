// Command printkit renders a job of images into printable pages. The job
// comes from a JSON source list (-job) or a JavaScript job script
// (-script); pages go to a PDF file or a directory of PNGs. Flags override
// the script, which overrides the config file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/wudi/printkit/config"
	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/job"
	"github.com/wudi/printkit/observability"
	"github.com/wudi/printkit/raster"
	"github.com/wudi/printkit/render"
	"github.com/wudi/printkit/scripting"
	"github.com/wudi/printkit/spool"
	"github.com/wudi/printkit/spool/pdffile"
	"github.com/wudi/printkit/spool/pngdir"
)

var (
	configPath = flag.String("config", "", "config file (yaml)")
	jobPath    = flag.String("job", "", "job file: JSON list of image sources")
	scriptPath = flag.String("script", "", "job script (JavaScript)")
	outPath    = flag.String("out", "", "output file or directory")
	backend    = flag.String("backend", "", "output backend: pdf or png")
	scale      = flag.Bool("scale", false, "scale images to fit the page")
	rotate     = flag.Float64("rotate", 0, "rotation in degrees")
	interp     = flag.String("interpolation", "", "bicubic, bilinear, or nearest-neighbor")
	paper      = flag.String("paper", "", "page size: letter, a4, or WxH in points")
	jobName    = flag.String("job-name", "", "name reported to the spooler")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "printkit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := observability.NewZap(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sources, opts, err := loadJob(ctx, cfg)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, &opts); err != nil {
		return err
	}
	format, err := cfg.PageFormat()
	if err != nil {
		return err
	}

	j := job.New(job.WithLogger(log))
	if err := j.Parse(ctx, sources, opts); err != nil {
		return err
	}
	defer j.Cleanup()

	prn, dest, err := buildPrinter(cfg, format, j.ID())
	if err != nil {
		return err
	}
	if err := spool.Print(ctx, prn, j, j.Options(), log); err != nil {
		return err
	}
	if j.PageCount() > 0 {
		log.Info("wrote output",
			observability.String("backend", cfg.Output.Backend),
			observability.String("path", dest),
		)
	}
	return nil
}

// loadJob resolves the image sources and base options for this invocation.
// A script defines its own options; a JSON job inherits the config's.
func loadJob(ctx context.Context, cfg *config.Config) ([]raster.Source, job.Options, error) {
	opts, err := cfg.JobOptions()
	if err != nil {
		return nil, job.Options{}, err
	}
	switch {
	case *jobPath != "" && *scriptPath != "":
		return nil, job.Options{}, errors.New("use either -job or -script, not both")
	case *jobPath != "":
		data, err := os.ReadFile(*jobPath)
		if err != nil {
			return nil, job.Options{}, fmt.Errorf("read job file: %w", err)
		}
		sources, err := raster.ParseSources(data)
		if err != nil {
			return nil, job.Options{}, fmt.Errorf("parse job file %s: %w", *jobPath, err)
		}
		return sources, opts, nil
	case *scriptPath != "":
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return nil, job.Options{}, fmt.Errorf("read job script: %w", err)
		}
		engine, err := scripting.NewEngine()
		if err != nil {
			return nil, job.Options{}, err
		}
		req, err := engine.Execute(ctx, string(data))
		if err != nil {
			return nil, job.Options{}, fmt.Errorf("job script %s: %w", *scriptPath, err)
		}
		return req.Sources, req.Options, nil
	}
	return nil, job.Options{}, errors.New("no job given: pass -job file.json or -script file.js")
}

// applyOverrides folds explicitly passed flags over the options and config.
func applyOverrides(cfg *config.Config, opts *job.Options) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			opts.ScaleToFit = *scale
		case "rotate":
			opts.Rotation = *rotate
		case "interpolation":
			mode, perr := render.ParseInterpolation(*interp)
			if perr != nil {
				err = perr
				return
			}
			opts.Interpolation = mode
		case "job-name":
			opts.JobName = *jobName
		case "paper":
			cfg.Page.Size = *paper
		case "backend":
			cfg.Output.Backend = *backend
		case "out":
			cfg.Output.Path = *outPath
		}
	})
	return err
}

func buildPrinter(cfg *config.Config, format geom.PageFormat, jobID string) (spool.Printer, string, error) {
	switch cfg.Output.Backend {
	case "pdf":
		path := cfg.Output.Path
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "printjob-"+jobID+".pdf")
		}
		return pdffile.New(path, pdffile.WithFormat(format)), path, nil
	case "png":
		return pngdir.New(cfg.Output.Path, pngdir.WithFormat(format)), cfg.Output.Path, nil
	}
	return nil, "", fmt.Errorf("unknown output backend %q", cfg.Output.Backend)
}
