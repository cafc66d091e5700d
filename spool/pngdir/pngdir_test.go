package pngdir

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func redCanvas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestPrinterWritesNumberedPages(t *testing.T) {
	dir := t.TempDir()
	prn := New(dir)

	if err := prn.BeginJob("x"); err != nil {
		t.Fatal(err)
	}
	if err := prn.PrintPage(0, redCanvas(12, 8)); err != nil {
		t.Fatal(err)
	}
	if err := prn.PrintPage(1, redCanvas(5, 5)); err != nil {
		t.Fatal(err)
	}
	if err := prn.EndJob(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "page-0000.png")); !os.IsNotExist(err) {
		t.Error("page numbering must start at 1")
	}
	f, err := os.Open(filepath.Join(dir, "page-0001.png"))
	if err != nil {
		t.Fatalf("first page missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode first page: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("first page = %dx%d, want 12x8", b.Dx(), b.Dy())
	}
	r, _, _, a := img.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("first page pixel = %v, want opaque red", img.At(0, 0))
	}
	if _, err := os.Stat(filepath.Join(dir, "page-0002.png")); err != nil {
		t.Errorf("second page missing: %v", err)
	}
}

func TestPrinterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	prn := New(dir)

	if err := prn.BeginJob("x"); err != nil {
		t.Fatalf("BeginJob should create %s: %v", dir, err)
	}
	if err := prn.PrintPage(0, redCanvas(2, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "page-0001.png")); err != nil {
		t.Errorf("page not written into created directory: %v", err)
	}
}

func TestJobSubdir(t *testing.T) {
	dir := t.TempDir()
	prn := New(dir, WithJobSubdir())

	if err := prn.BeginJob("Fancy Job"); err != nil {
		t.Fatal(err)
	}
	if err := prn.PrintPage(0, redCanvas(2, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Fancy-Job", "page-0001.png")); err != nil {
		t.Errorf("page not written into job subdirectory: %v", err)
	}
}

func TestNumberingSpansRuns(t *testing.T) {
	dir := t.TempDir()
	prn := New(dir)

	if err := prn.BeginJob("copies"); err != nil {
		t.Fatal(err)
	}
	// two runs of a one-page document inside a single job
	for run := 0; run < 2; run++ {
		if err := prn.PrintPage(0, redCanvas(3, 3)); err != nil {
			t.Fatal(err)
		}
	}
	if err := prn.EndJob(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"page-0001.png", "page-0002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize(""); got != "job" {
		t.Errorf("sanitize(\"\") = %q", got)
	}
	if got := sanitize("a/b c"); got != "a-b-c" {
		t.Errorf("sanitize = %q", got)
	}
}
