package sink

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// Page geometry in millimetres.
const (
	pdfMarginX = 10.0
	pdfMarginY = 5.0
)

// Paragraph text around the table, in points.
const (
	pdfTextSize  = 10.0
	pdfLineScale = 1.2
)

// coreFallback replaces glyphs the built-in fonts cannot encode.
var coreFallback = strings.NewReplacer("∞", "oo")

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	fontFamily string
	fontPath   string
	created    time.Time

	pdf  *fpdf.Fpdf
	text func(string) string
}

// WithPDFUTF8Font embeds a TrueType font and uses it for all text. The same
// file serves the regular, bold and italic styles.
func WithPDFUTF8Font(family, path string) PDFOption {
	return func(r *pdfRenderer) { r.fontFamily, r.fontPath = family, path }
}

// WithPDFCreationDate fixes the creation date stored in the document, which
// makes the output byte-for-byte reproducible.
func WithPDFCreationDate(t time.Time) PDFOption {
	return func(r *pdfRenderer) { r.created = t }
}

// RenderPDF renders doc as an A4 PDF.
func RenderPDF(doc Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	pdf.SetAutoPageBreak(false, pdfMarginY)
	pdf.SetCellMargin(0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetSubject(doc.Subject, true)
	pdf.SetCreator(doc.Author, true)
	if !r.created.IsZero() {
		pdf.SetCreationDate(r.created)
		pdf.SetModificationDate(r.created)
		pdf.SetCatalogSort(true)
	}

	if r.fontPath != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(r.fontFamily, style, r.fontPath)
		}
		r.text = func(s string) string { return s }
	} else {
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		r.text = func(s string) string { return tr(coreFallback.Replace(s)) }
	}
	r.pdf = pdf

	pdf.AddPage()
	if doc.Heading != "" {
		r.paragraph(doc.Heading, "B", "C")
		r.blankLine()
	}
	if doc.Layout.Empty() {
		r.paragraph(doc.EmptyMessage, "I", "L")
	} else {
		r.table(doc.Layout)
	}
	if doc.Footer != "" {
		r.blankLine()
		r.paragraph(doc.Footer, "", "L")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("draw pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) family(name string) string {
	if r.fontFamily != "" {
		return r.fontFamily
	}
	return name
}

func (r *pdfRenderer) lineHeight(size float64) float64 {
	return r.pdf.PointConvert(size * pdfLineScale)
}

// ensure starts a new page unless h millimetres still fit on this one.
func (r *pdfRenderer) ensure(h float64) {
	_, pageH := r.pdf.GetPageSize()
	if r.pdf.GetY()+h > pageH-pdfMarginY {
		r.pdf.AddPage()
	}
}

func (r *pdfRenderer) paragraph(s, style, align string) {
	h := r.lineHeight(pdfTextSize)
	r.ensure(h)
	r.pdf.SetFont(r.family(sheet.DefaultFont), style, pdfTextSize)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.MultiCell(0, h, r.text(s), "", align, false)
}

func (r *pdfRenderer) blankLine() {
	r.pdf.Ln(r.lineHeight(pdfTextSize))
}

// table draws the layout, breaking pages only between row blocks.
func (r *pdfRenderer) table(l sheet.Layout) {
	res := l.Resolve()
	pageW, pageH := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()

	widths := fitWidths(l.Widths, (pageW-left-right)/10)
	xs := make([]float64, len(widths)+1)
	xs[0] = left
	for i, w := range widths {
		xs[i+1] = xs[i] + w*10
	}

	heights := make([]float64, res.Rows)
	for row := range heights {
		tallest := 0.0
		for _, s := range res.Cells[row] {
			tallest = max(tallest, s.FontSize*pdfLineScale+s.Padding.Top+s.Padding.Bottom)
		}
		heights[row] = r.pdf.PointConvert(tallest)
	}

	ys := make([]float64, res.Rows)
	y, start := r.pdf.GetY(), 0
	for _, b := range res.Blocks() {
		h := 0.0
		for row := b.Start; row < b.End; row++ {
			h += heights[row]
		}
		if y+h > pageH-pdfMarginY && b.Start > start {
			r.rows(l.Grid, res, xs, ys, heights, start, b.Start)
			r.pdf.AddPage()
			y, start = r.pdf.GetY(), b.Start
		}
		for row := b.Start; row < b.End; row++ {
			ys[row] = y
			y += heights[row]
		}
	}
	r.rows(l.Grid, res, xs, ys, heights, start, res.Rows)
	r.pdf.SetXY(left, y)
}

// rows paints rows [from, to), all of which sit on the current page.
func (r *pdfRenderer) rows(g sheet.Grid, res *sheet.Resolved, xs, ys, heights []float64, from, to int) {
	pt := r.pdf.PointConvert

	for row := from; row < to; row++ {
		for col := 0; col < res.Cols; col++ {
			if res.Hidden(row, col) {
				continue
			}
			nr, nc := span(res, row, col)
			last := row + nr - 1
			x, y := xs[col], ys[row]
			w, h := xs[col+nc]-x, ys[last]+heights[last]-y
			s := res.Cells[row][col]

			if s.Filled {
				r.pdf.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
				r.pdf.Rect(x, y, w, h, "F")
			}
			text := g.Cell(row, col)
			if text == "" {
				continue
			}
			padL, padR := pt(s.Padding.Left), pt(s.Padding.Right)
			padT, padB := pt(s.Padding.Top), pt(s.Padding.Bottom)
			r.pdf.SetFont(r.family(s.Font), "", s.FontSize)
			r.pdf.SetTextColor(0, 0, 0)
			r.pdf.SetXY(x+padL, y+padT)
			r.pdf.CellFormat(w-padL-padR, h-padT-padB, r.text(text), "", 0, pdfAlign(s), false, 0, "")
		}
	}

	r.pdf.SetDrawColor(0, 0, 0)
	bottom := ys[to-1] + heights[to-1]
	for row := from; row <= to; row++ {
		y := bottom
		if row < to {
			y = ys[row]
		}
		for col := 0; col < res.Cols; col++ {
			if w := res.HLine(row, col); w > 0 {
				r.pdf.SetLineWidth(pt(w))
				r.pdf.Line(xs[col], y, xs[col+1], y)
			}
		}
	}
	for row := from; row < to; row++ {
		for col := 0; col <= res.Cols; col++ {
			if w := res.VLine(row, col); w > 0 {
				r.pdf.SetLineWidth(pt(w))
				r.pdf.Line(xs[col], ys[row], xs[col], ys[row]+heights[row])
			}
		}
	}
}

// pdfAlign maps a cell style to a CellFormat alignment string such as "CM".
func pdfAlign(s sheet.CellStyle) string {
	h := map[sheet.AlignMode]string{sheet.AlignCenter: "C", sheet.AlignRight: "R"}[s.HAlign]
	if h == "" {
		h = "L"
	}
	v := map[sheet.AlignMode]string{sheet.AlignTop: "T", sheet.AlignMiddle: "M"}[s.VAlign]
	if v == "" {
		v = "B"
	}
	return h + v
}
