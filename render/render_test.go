package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/wudi/printkit/geom"
)

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRotateIdentity(t *testing.T) {
	src := solidNRGBA(7, 3, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(2, 1, color.NRGBA{G: 255, A: 255})

	for _, degrees := range []float64{0, 360, 720, -360} {
		got := Rotate(src, degrees, Bicubic)
		if got != image.Image(src) {
			t.Errorf("Rotate(%v) allocated a new raster", degrees)
		}
		out, ok := got.(*image.NRGBA)
		if !ok || !bytes.Equal(out.Pix, src.Pix) {
			t.Errorf("Rotate(%v) changed pixel content", degrees)
		}
	}
}

func TestRotateRightAngleExact(t *testing.T) {
	// 4x2 raster with a distinct color per pixel. A quarter turn clockwise
	// sends pixel (x, y) to (1-y, x) in the 2x4 result, with no resampling.
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(100 * y), B: 200, A: 255})
		}
	}

	got := Rotate(src, 90, Bicubic)
	b := got.Bounds()
	if b.Dx() != 2 || b.Dy() != 4 {
		t.Fatalf("rotated bounds = %dx%d, want 2x4", b.Dx(), b.Dy())
	}
	dst := got.(*image.NRGBA)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := src.NRGBAAt(x, y)
			if have := dst.NRGBAAt(1-y, x); have != want {
				t.Errorf("pixel (%d, %d) rotated to (%d, %d) = %v, want %v", x, y, 1-y, x, have, want)
			}
		}
	}
}

func TestRotateExpandsBounds(t *testing.T) {
	src := solidNRGBA(100, 50, color.NRGBA{B: 255, A: 255})

	got := Rotate(src, 90, Bicubic).Bounds()
	if got.Dx() != 50 || got.Dy() != 100 {
		t.Errorf("90 degree bounds = %dx%d, want 50x100", got.Dx(), got.Dy())
	}

	got = Rotate(src, 45, Bicubic).Bounds()
	if got.Dx() != 106 || got.Dy() != 106 {
		t.Errorf("45 degree bounds = %dx%d, want 106x106", got.Dx(), got.Dy())
	}
}

func TestRotateArbitraryAngle(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	src := solidNRGBA(100, 100, red)
	before := append([]byte(nil), src.Pix...)

	dst := Rotate(src, 45, Bicubic).(*image.NRGBA)
	if b := dst.Bounds(); b.Dx() != 141 || b.Dy() != 141 {
		t.Fatalf("45 degree bounds = %dx%d, want 141x141", b.Dx(), b.Dy())
	}
	// The source center stays at the destination center, far from any edge,
	// so the filter sees a uniform field there.
	if got := dst.NRGBAAt(70, 70); got != red {
		t.Errorf("center pixel = %v, want %v", got, red)
	}
	if got := dst.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner outside the rotated quad should stay transparent, got %v", got)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Error("Rotate modified its input")
	}
}

func TestComposePageCanvas(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	src := solidNRGBA(10, 10, red)
	area := geom.Imageable{X: 5.7, Y: 3.2, Width: 50, Height: 50}

	canvas := ComposePage(src, 20, 10, area, Nearest)
	if b := canvas.Bounds(); b.Dx() != 25 || b.Dy() != 13 {
		t.Fatalf("canvas = %dx%d, want 25x13", b.Dx(), b.Dy())
	}
	if got := canvas.NRGBAAt(5, 3); got != red {
		t.Errorf("target origin pixel = %v, want %v", got, red)
	}
	if got := canvas.NRGBAAt(24, 12); got != red {
		t.Errorf("target far corner pixel = %v, want %v", got, red)
	}
	if got := canvas.NRGBAAt(4, 3); got.A != 0 {
		t.Errorf("left of the target rect should stay transparent, got %v", got)
	}
	if got := canvas.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("offset region should stay transparent, got %v", got)
	}
}

func TestComposePageDoesNotMutateInput(t *testing.T) {
	src := solidNRGBA(8, 8, color.NRGBA{G: 255, A: 255})
	before := append([]byte(nil), src.Pix...)

	ComposePage(src, 16, 16, geom.Imageable{Width: 20, Height: 20}, Bicubic)
	ComposePage(src, 4, 4, geom.Imageable{X: 1, Y: 1, Width: 5, Height: 5}, Nearest)

	if !bytes.Equal(src.Pix, before) {
		t.Error("ComposePage modified its input")
	}
}

func TestParseInterpolation(t *testing.T) {
	cases := []struct {
		name string
		want Interpolation
	}{
		{"", Bicubic},
		{"bicubic", Bicubic},
		{"bilinear", Bilinear},
		{"Bilinear", Bilinear},
		{"nearest-neighbor", Nearest},
		{"NEAREST-NEIGHBOR", Nearest},
	}
	for _, c := range cases {
		got, err := ParseInterpolation(c.name)
		if err != nil || got != c.want {
			t.Errorf("ParseInterpolation(%q) = %v, %v; want %v", c.name, got, err, c.want)
		}
	}
	if _, err := ParseInterpolation("gaussian"); err == nil {
		t.Error("expected error for unknown interpolation")
	}
	if Bicubic.String() != "bicubic" || Nearest.String() != "nearest-neighbor" {
		t.Error("String names should match the option vocabulary")
	}
}
