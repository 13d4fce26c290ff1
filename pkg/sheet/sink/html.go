package sink

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	fragment bool
}

// WithHTMLFragment emits only the content, without the html, head and body
// elements, for embedding into another page.
func WithHTMLFragment() HTMLOption {
	return func(r *htmlRenderer) { r.fragment = true }
}

// RenderHTML renders doc as an HTML page. Merged cells become colspan and
// rowspan; every cell carries its resolved style inline.
func RenderHTML(doc Document, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var b strings.Builder
	if !r.fragment {
		b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Title))
		if doc.Author != "" {
			fmt.Fprintf(&b, "<meta name=\"author\" content=\"%s\">\n", html.EscapeString(doc.Author))
		}
		if doc.Subject != "" {
			fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(doc.Subject))
		}
		b.WriteString("<style>@page { size: A4; margin: 0.5cm 1cm; } body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; }</style>\n")
		b.WriteString("</head>\n<body>\n")
	}

	if doc.Heading != "" {
		fmt.Fprintf(&b, "<p style=\"text-align:center;\"><strong>%s</strong></p>\n", html.EscapeString(doc.Heading))
	}
	if doc.Layout.Empty() {
		fmt.Fprintf(&b, "<p><i>%s</i></p>\n", html.EscapeString(doc.EmptyMessage))
	} else {
		writeHTMLTable(&b, doc.Layout)
	}
	if doc.Footer != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(doc.Footer))
	}

	if !r.fragment {
		b.WriteString("</body>\n</html>\n")
	}
	return []byte(b.String()), nil
}

func writeHTMLTable(b *strings.Builder, l sheet.Layout) {
	res := l.Resolve()

	b.WriteString("<table style=\"border-collapse:collapse;\">\n  <colgroup>\n")
	for _, w := range l.Widths {
		if w == sheet.Auto {
			b.WriteString("    <col>\n")
		} else {
			fmt.Fprintf(b, "    <col style=\"width:%.2fcm;\">\n", w)
		}
	}
	b.WriteString("  </colgroup>\n")

	for row := 0; row < res.Rows; row++ {
		b.WriteString("  <tr>\n")
		for col := 0; col < res.Cols; col++ {
			if res.Hidden(row, col) {
				continue
			}
			nr, nc := span(res, row, col)
			var attr string
			if nc > 1 {
				attr += fmt.Sprintf(" colspan=\"%d\"", nc)
			}
			if nr > 1 {
				attr += fmt.Sprintf(" rowspan=\"%d\"", nr)
			}
			fmt.Fprintf(b, "    <td data-row=\"%d\" data-col=\"%d\"%s style=\"%s\">%s</td>\n",
				row, col, attr, cellCSS(res, row, col, nr, nc), html.EscapeString(l.Grid.Cell(row, col)))
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n")
}

// cellCSS returns the inline style of the cell anchored at (row, col) and
// spanning nr rows and nc columns.
func cellCSS(res *sheet.Resolved, row, col, nr, nc int) string {
	s := res.Cells[row][col]

	var css strings.Builder
	fmt.Fprintf(&css, "font-family:%s;font-size:%gpt;", s.Font, s.FontSize)
	fmt.Fprintf(&css, "text-align:%s;vertical-align:%s;", cssAlign(s.HAlign), cssAlign(s.VAlign))
	fmt.Fprintf(&css, "padding:%gpt %gpt %gpt %gpt;", s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.Padding.Left)
	if s.Filled {
		fmt.Fprintf(&css, "background-color:%s;", s.Fill.Hex())
	}

	// Each side takes the heaviest line along the edge of the merged area.
	var top, bottom, left, right float64
	for c := col; c < col+nc; c++ {
		top = max(top, res.HLine(row, c))
		bottom = max(bottom, res.HLine(row+nr, c))
	}
	for r := row; r < row+nr; r++ {
		left = max(left, res.VLine(r, col))
		right = max(right, res.VLine(r, col+nc))
	}
	for _, side := range []struct {
		name   string
		weight float64
	}{{"top", top}, {"right", right}, {"bottom", bottom}, {"left", left}} {
		if side.weight > 0 {
			fmt.Fprintf(&css, "border-%s:%gpt solid #000;", side.name, side.weight)
		}
	}
	return css.String()
}

func cssAlign(m sheet.AlignMode) string {
	switch m {
	case sheet.AlignCenter:
		return "center"
	case sheet.AlignRight:
		return "right"
	case sheet.AlignTop:
		return "top"
	case sheet.AlignMiddle:
		return "middle"
	case sheet.AlignBottom:
		return "bottom"
	default:
		return "left"
	}
}
