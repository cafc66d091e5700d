// Package config loads defaults and preferences for the printkit CLI:
// built-in defaults first, then an optional yaml config file, then
// PRINTKIT_* environment overrides. Library packages never read
// configuration; only the CLI does.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/job"
	"github.com/wudi/printkit/render"
)

type JobConfig struct {
	ScaleToFit    bool    `mapstructure:"scale_to_fit"`
	Rotation      float64 `mapstructure:"rotation"`
	Interpolation string  `mapstructure:"interpolation"`
	Name          string  `mapstructure:"name"`
}

type PageConfig struct {
	// Size is "letter", "a4", or "WxH" in points.
	Size   string  `mapstructure:"size"`
	Margin float64 `mapstructure:"margin"`
}

type OutputConfig struct {
	// Backend is "pdf" or "png".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Job    JobConfig    `mapstructure:"job"`
	Page   PageConfig   `mapstructure:"page"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("job.scale_to_fit", false)
	v.SetDefault("job.rotation", 0.0)
	v.SetDefault("job.interpolation", "bicubic")
	v.SetDefault("job.name", "")
	v.SetDefault("page.size", "letter")
	v.SetDefault("page.margin", 0.0)
	v.SetDefault("output.backend", "pdf")
	v.SetDefault("output.path", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the configuration. path names an explicit config file, which
// must exist; when empty, printkit.yaml in the working directory is used
// if present and silently skipped otherwise.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("printkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PRINTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// PageFormat resolves the configured page size and margin.
func (c *Config) PageFormat() (geom.PageFormat, error) {
	var f geom.PageFormat
	size := strings.ToLower(strings.TrimSpace(c.Page.Size))
	switch size {
	case "", "letter":
		f = geom.Letter()
	case "a4":
		f = geom.A4()
	default:
		w, h, ok := strings.Cut(size, "x")
		if !ok {
			return geom.PageFormat{}, fmt.Errorf("unknown page size %q", c.Page.Size)
		}
		width, errW := strconv.ParseFloat(strings.TrimSpace(w), 64)
		height, errH := strconv.ParseFloat(strings.TrimSpace(h), 64)
		if errW != nil || errH != nil || width <= 0 || height <= 0 {
			return geom.PageFormat{}, fmt.Errorf("unknown page size %q", c.Page.Size)
		}
		f = geom.PageFormat{Width: width, Height: height, Imageable: geom.Imageable{Width: width, Height: height}}
	}
	return f.WithMargin(c.Page.Margin), nil
}

// JobOptions maps the job section onto render options.
func (c *Config) JobOptions() (job.Options, error) {
	mode, err := render.ParseInterpolation(c.Job.Interpolation)
	if err != nil {
		return job.Options{}, err
	}
	return job.Options{
		ScaleToFit:    c.Job.ScaleToFit,
		Interpolation: mode,
		Rotation:      c.Job.Rotation,
		JobName:       c.Job.Name,
	}, nil
}
