package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// maxImageDimension caps width/height so headers that lie about image
	// sizes cannot force excessive allocations.
	maxImageDimension = 32768
	// maxImagePixels bounds the total pixel count (64MP keeps NRGBA
	// buffers under 256 MB).
	maxImagePixels int64 = 64 * 1024 * 1024
)

// Loader decodes source descriptors into in-memory rasters.
type Loader struct {
	fetcher Fetcher
}

type LoaderOption func(*Loader)

// WithFetcher replaces how external references are dereferenced.
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *Loader) { l.fetcher = f }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: DefaultFetcher{}}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load decodes every source into a raster, same length and order as the
// input. The first failure aborts the whole batch with no partial result:
// a print job is all or nothing.
func (l *Loader) Load(ctx context.Context, sources []Source) ([]image.Image, error) {
	images := make([]image.Image, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := l.load(ctx, src)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (l *Loader) load(ctx context.Context, src Source) (image.Image, error) {
	if src.Encoding == EncodingBase64 {
		raw, err := base64.StdEncoding.DecodeString(src.Data)
		if err != nil {
			return nil, &DecodeError{Encoding: src.Encoding, Err: err}
		}
		return decode(raw, src.Encoding, "")
	}
	raw, err := l.fetcher.Fetch(ctx, src.Data)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch image %q: %w", src.Data, err)
	}
	return decode(raw, src.Encoding, src.Data)
}

func decode(data []byte, enc Encoding, ref string) (image.Image, error) {
	// Check declared bounds before decoding pixel data.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Encoding: enc, Ref: ref, Err: err}
	}
	if err := validateBounds(cfg.Width, cfg.Height); err != nil {
		return nil, &DecodeError{Encoding: enc, Ref: ref, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Encoding: enc, Ref: ref, Err: err}
	}
	return normalize(img), nil
}

func validateBounds(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image bounds invalid (%d x %d)", width, height)
	}
	if width > maxImageDimension || height > maxImageDimension {
		return fmt.Errorf("image dimension exceeds limit (%d x %d)", width, height)
	}
	if pixels := int64(width) * int64(height); pixels > maxImagePixels {
		return fmt.Errorf("image pixel count %d exceeds limit %d", pixels, maxImagePixels)
	}
	return nil
}

// normalize converts a decoded image to NRGBA with its origin at (0, 0) so
// every downstream transform operates on one representation.
func normalize(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
