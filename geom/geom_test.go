package geom

import (
	"math"
	"testing"
)

func TestRotatedSize(t *testing.T) {
	cases := []struct {
		w, h    int
		degrees float64
		wantW   int
		wantH   int
	}{
		{100, 50, 90, 50, 100},
		{100, 50, 45, 106, 106},
		{100, 50, 180, 100, 50},
		{100, 50, 270, 50, 100},
		{100, 50, -90, 50, 100},
		{100, 50, 30, 111, 93},
		{640, 480, 0, 640, 480},
	}
	for _, c := range cases {
		gotW, gotH := RotatedSize(c.w, c.h, c.degrees)
		if gotW != c.wantW || gotH != c.wantH {
			t.Errorf("RotatedSize(%d, %d, %v) = %dx%d, want %dx%d",
				c.w, c.h, c.degrees, gotW, gotH, c.wantW, c.wantH)
		}
	}
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		w, h           int
		boundW, boundH float64
		wantW, wantH   int
	}{
		{200, 100, 50, 50, 50, 25},
		{100, 200, 50, 50, 25, 50},
		{100, 100, 50, 50, 50, 50},
		{50, 25, 200, 100, 200, 100},
		{3, 7, 10, 10, 4, 10},
	}
	for _, c := range cases {
		gotW, gotH := FitSize(c.w, c.h, c.boundW, c.boundH)
		if gotW != c.wantW || gotH != c.wantH {
			t.Errorf("FitSize(%d, %d, %v, %v) = %dx%d, want %dx%d",
				c.w, c.h, c.boundW, c.boundH, gotW, gotH, c.wantW, c.wantH)
		}
	}
}

func TestFitSizePreservesAspect(t *testing.T) {
	w, h := FitSize(200, 100, 50, 50)
	if got := float64(w) / float64(h); math.Abs(got-2.0) > 0.05 {
		t.Errorf("aspect ratio = %v, want 2.0", got)
	}
	if w != 50 && h != 50 {
		t.Errorf("neither axis reached its bound: %dx%d", w, h)
	}
	if float64(w) > 50 || float64(h) > 50 {
		t.Errorf("result %dx%d exceeds 50x50 bound", w, h)
	}
}

func TestMatrixApply(t *testing.T) {
	m := Translate(10, 20)
	if x, y := m.Apply(1, 2); x != 11 || y != 22 {
		t.Errorf("Translate.Apply = (%v, %v), want (11, 22)", x, y)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("Identity.Multiply = %v, want %v", got, m)
	}
}

func TestRotateAboutCenter(t *testing.T) {
	// Quarter turn of a 100x50 box around its center, then the translate
	// that centers the result in the swapped 50x100 bounding box.
	m := RotateAbout(math.Pi/2, 50, 25).Multiply(Translate(-25, 25))
	corners := [][4]float64{
		{0, 0, 50, 0},
		{100, 0, 50, 100},
		{0, 50, 0, 0},
		{100, 50, 0, 100},
	}
	for _, c := range corners {
		x, y := m.Apply(c[0], c[1])
		if math.Abs(x-c[2]) > 1e-9 || math.Abs(y-c[3]) > 1e-9 {
			t.Errorf("corner (%v, %v) mapped to (%v, %v), want (%v, %v)", c[0], c[1], x, y, c[2], c[3])
		}
	}
}

func TestMatrixInverse(t *testing.T) {
	m := Translate(3, 4).Multiply(Rotate(0.7)).Multiply(Scale(2, 5))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	x, y := m.Multiply(inv).Apply(13, 17)
	if math.Abs(x-13) > 1e-9 || math.Abs(y-17) > 1e-9 {
		t.Errorf("m * m^-1 moved (13, 17) to (%v, %v)", x, y)
	}
	if _, err := Scale(0, 0).Inverse(); err == nil {
		t.Error("expected singular matrix error")
	}
}

func TestImageableValid(t *testing.T) {
	if (Imageable{}).Valid() {
		t.Error("zero area should be invalid")
	}
	if (Imageable{X: -1, Width: 10, Height: 10}).Valid() {
		t.Error("negative origin should be invalid")
	}
	if !(Imageable{X: 18, Y: 18, Width: 576, Height: 756}).Valid() {
		t.Error("letter area with margin should be valid")
	}
}

func TestPageFormatWithMargin(t *testing.T) {
	f := Letter().WithMargin(36)
	want := Imageable{X: 36, Y: 36, Width: 540, Height: 720}
	if f.Imageable != want {
		t.Errorf("imageable = %+v, want %+v", f.Imageable, want)
	}
	if f.Width != 612 || f.Height != 792 {
		t.Errorf("margin changed the physical page: %vx%v", f.Width, f.Height)
	}
	if a4 := A4(); a4.Width != 595 || a4.Height != 842 {
		t.Errorf("A4 = %vx%v, want 595x842", a4.Width, a4.Height)
	}
}
