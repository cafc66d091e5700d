package geom

// Imageable is the printable sub-rectangle of a physical page, expressed in
// device units. X and Y locate its origin on the page.
type Imageable struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Valid reports whether the area can receive content. Page render calls with
// an invalid area are host misuse, not end-of-document.
func (a Imageable) Valid() bool {
	return a.Width > 0 && a.Height > 0 && a.X >= 0 && a.Y >= 0
}

// PageFormat is the page template a print target renders against.
type PageFormat struct {
	Width     float64
	Height    float64
	Imageable Imageable
}

// Letter returns a US Letter page (612x792 points) with no margin.
func Letter() PageFormat {
	return PageFormat{Width: 612, Height: 792, Imageable: Imageable{Width: 612, Height: 792}}
}

// A4 returns an ISO A4 page (595x842 points) with no margin.
func A4() PageFormat {
	return PageFormat{Width: 595, Height: 842, Imageable: Imageable{Width: 595, Height: 842}}
}

// WithMargin shrinks the imageable area by m device units on every side.
// Margins that would leave no printable area are clamped to zero extent.
func (f PageFormat) WithMargin(m float64) PageFormat {
	if m <= 0 {
		return f
	}
	w := f.Width - 2*m
	h := f.Height - 2*m
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.Imageable = Imageable{X: m, Y: m, Width: w, Height: h}
	return f
}
