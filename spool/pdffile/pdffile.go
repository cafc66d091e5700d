// Package pdffile prints a job into a single PDF file: one page per canvas,
// each canvas JPEG-encoded and placed at the page's top-left corner at one
// PDF point per pixel. The file is a flat PDF 1.7 body with a classic xref
// table, small enough to write in one buffer.
package pdffile

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"
	"strconv"
	"strings"

	"github.com/wudi/printkit/geom"
	"github.com/wudi/printkit/spool"
)

type page struct {
	data []byte
	w, h int
}

// Printer buffers pages as they arrive and serializes the document when the
// job ends. Not safe for concurrent use, like the print loop that drives it.
type Printer struct {
	path    string
	format  geom.PageFormat
	quality int
	name    string
	pages   []page
}

var _ spool.Printer = (*Printer)(nil)

// Option configures a Printer.
type Option func(*Printer)

// WithFormat sets the page format. Default is Letter with no margin.
func WithFormat(f geom.PageFormat) Option {
	return func(p *Printer) { p.format = f }
}

// WithQuality sets the JPEG quality (1..100, clamped). Default is 90.
func WithQuality(q int) Option {
	return func(p *Printer) {
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		p.quality = q
	}
}

// New returns a Printer that writes the finished document to path.
func New(path string, opts ...Option) *Printer {
	p := &Printer{path: path, format: geom.Letter(), quality: 90}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Format() geom.PageFormat { return p.format }

// BeginJob starts a fresh document named name, dropping any buffered pages.
func (p *Printer) BeginJob(name string) error {
	p.name = name
	p.pages = p.pages[:0]
	return nil
}

// PrintPage flattens the canvas onto white (JPEG carries no alpha) and
// buffers it as the next page.
func (p *Printer) PrintPage(_ int, canvas image.Image) error {
	b := canvas.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), canvas, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: p.quality}); err != nil {
		return fmt.Errorf("encode page %d: %w", len(p.pages)+1, err)
	}
	p.pages = append(p.pages, page{data: buf.Bytes(), w: b.Dx(), h: b.Dy()})
	return nil
}

// EndJob serializes the buffered pages and writes the PDF to disk.
func (p *Printer) EndJob() error {
	// fixed numbering: 1 catalog, 2 pages tree, 3 info, then an image
	// XObject, content stream, and page dict per buffered page
	total := 3 + 3*len(p.pages)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
	offsets := make([]int, total+1)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	writeStream := func(num int, dict string, data []byte) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nstream\n", num, dict)
		buf.Write(data)
		buf.WriteString("\nendstream\nendobj\n")
	}

	kids := make([]string, 0, len(p.pages))
	for i := range p.pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 6+3*i))
	}
	writeObj(1, "<</Type /Catalog /Pages 2 0 R>>")
	writeObj(2, fmt.Sprintf("<</Type /Pages /Count %d /Kids [%s]>>", len(p.pages), strings.Join(kids, " ")))
	writeObj(3, fmt.Sprintf("<</Title (%s) /Producer (printkit)>>", escapeText(p.name)))

	for i, pg := range p.pages {
		imgNum, contentNum, pageNum := 4+3*i, 5+3*i, 6+3*i
		writeStream(imgNum, fmt.Sprintf(
			"<</Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d>>",
			pg.w, pg.h, len(pg.data)), pg.data)
		// place the canvas at the page's top-left; PDF y grows upward
		content := fmt.Sprintf("q\n%d 0 0 %d 0 %s cm\n/Im%d Do\nQ\n",
			pg.w, pg.h, ptNumber(p.format.Height-float64(pg.h)), i)
		writeStream(contentNum, fmt.Sprintf("<</Length %d>>", len(content)), []byte(content))
		writeObj(pageNum, fmt.Sprintf(
			"<</Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources <</XObject <</Im%d %d 0 R>>>> /Contents %d 0 R>>",
			ptNumber(p.format.Width), ptNumber(p.format.Height), i, imgNum, contentNum))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= total; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d /Root 1 0 R /Info 3 0 R>>\nstartxref\n%d\n%%%%EOF\n", total+1, xrefOffset)

	if err := os.WriteFile(p.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write pdf %s: %w", p.path, err)
	}
	return nil
}

func ptNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}
