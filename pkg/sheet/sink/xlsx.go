package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// maxSheetName is the longest worksheet name Excel accepts.
const maxSheetName = 31

// XLSXOption configures spreadsheet rendering.
type XLSXOption func(*xlsxRenderer)

type xlsxRenderer struct {
	sheetName string

	wb     *spreadsheet.Workbook
	styles map[xlsxStyleKey]spreadsheet.CellStyle
}

// WithXLSXSheetName names the worksheet. It defaults to the document title.
func WithXLSXSheetName(name string) XLSXOption {
	return func(r *xlsxRenderer) { r.sheetName = name }
}

type xlsxStyleKey struct {
	cell                     sheet.CellStyle
	top, right, bottom, left float64
	bold, italic             bool
}

// RenderXLSX renders doc as a single-sheet workbook. Borders, fills,
// alignment and merged cells follow the resolved layout; column widths keep
// their centimetre values.
func RenderXLSX(doc Document, opts ...XLSXOption) ([]byte, error) {
	r := xlsxRenderer{sheetName: doc.Title}
	for _, opt := range opts {
		opt(&r)
	}
	r.wb = spreadsheet.New()
	r.styles = make(map[xlsxStyleKey]spreadsheet.CellStyle)

	ws := r.wb.AddSheet()
	ws.SetName(sheetName(r.sheetName))

	cols := max(doc.Layout.Grid.Columns, 1)
	rowNum := 0
	addLine := func(text string, bold, italic, center bool) {
		rowNum++
		row := ws.AddRow()
		cell := row.AddCell()
		cell.SetString(text)
		s := sheet.CellStyle{Font: sheet.DefaultFont, FontSize: 10, HAlign: sheet.AlignLeft, VAlign: sheet.AlignBottom}
		if center {
			s.HAlign = sheet.AlignCenter
		}
		cell.SetStyle(r.style(xlsxStyleKey{cell: s, bold: bold, italic: italic}))
		if cols > 1 {
			ws.AddMergedCells(cellRef(0, rowNum), cellRef(cols-1, rowNum))
		}
	}
	blank := func() {
		rowNum++
		ws.AddRow()
	}

	if doc.Heading != "" {
		addLine(doc.Heading, true, false, true)
		blank()
	}

	if doc.Layout.Empty() {
		addLine(doc.EmptyMessage, false, true, false)
	} else {
		offset := rowNum
		res := doc.Layout.Resolve()
		for i := 0; i < res.Rows; i++ {
			rowNum++
			row := ws.AddRow()
			tallest := 0.0
			for col := 0; col < res.Cols; col++ {
				s := res.Cells[i][col]
				tallest = max(tallest, s.FontSize*pdfLineScale+s.Padding.Top+s.Padding.Bottom)

				cell := row.AddCell()
				if !res.Hidden(i, col) {
					if text := doc.Layout.Grid.Cell(i, col); text != "" {
						cell.SetString(text)
					}
				}
				cell.SetStyle(r.style(xlsxStyleKey{
					cell:   s,
					top:    res.HLine(i, col),
					bottom: res.HLine(i+1, col),
					left:   res.VLine(i, col),
					right:  res.VLine(i, col+1),
				}))
			}
			row.SetHeight(measurement.Distance(tallest) * measurement.Point)
		}
		for _, m := range res.Merges {
			ws.AddMergedCells(cellRef(m.Col, offset+m.Row+1), cellRef(m.Col+m.Cols-1, offset+m.Row+m.Rows))
		}
		for i, w := range doc.Layout.Widths {
			if w != sheet.Auto {
				ws.Column(uint32(i + 1)).SetWidth(measurement.Distance(w) * measurement.Centimeter)
			}
		}
	}

	if doc.Footer != "" {
		blank()
		addLine(doc.Footer, false, false, false)
	}

	var buf bytes.Buffer
	if err := r.wb.Save(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// style returns the workbook cell style for k, creating it on first use.
func (r *xlsxRenderer) style(k xlsxStyleKey) spreadsheet.CellStyle {
	if cs, ok := r.styles[k]; ok {
		return cs
	}
	ss := r.wb.StyleSheet
	cs := ss.AddCellStyle()

	font := ss.AddFont()
	font.SetName(k.cell.Font)
	font.SetSize(k.cell.FontSize)
	font.SetBold(k.bold)
	font.SetItalic(k.italic)
	cs.SetFont(font)

	if k.cell.Filled {
		fill := ss.Fills().AddFill()
		pf := fill.SetPatternFill()
		pf.SetPattern(sml.ST_PatternTypeSolid)
		pf.SetFgColor(color.RGB(k.cell.Fill.R, k.cell.Fill.G, k.cell.Fill.B))
		cs.SetFill(fill)
	}

	if k.top > 0 || k.right > 0 || k.bottom > 0 || k.left > 0 {
		b := ss.AddBorder()
		if k.top > 0 {
			b.SetTop(borderStyle(k.top), color.Black)
		}
		if k.right > 0 {
			b.SetRight(borderStyle(k.right), color.Black)
		}
		if k.bottom > 0 {
			b.SetBottom(borderStyle(k.bottom), color.Black)
		}
		if k.left > 0 {
			b.SetLeft(borderStyle(k.left), color.Black)
		}
		cs.SetBorder(b)
	}

	switch k.cell.HAlign {
	case sheet.AlignCenter:
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentCenter)
	case sheet.AlignRight:
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentRight)
	default:
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentLeft)
	}
	switch k.cell.VAlign {
	case sheet.AlignTop:
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentTop)
	case sheet.AlignMiddle:
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentCenter)
	default:
		cs.SetVerticalAlignment(sml.ST_VerticalAlignmentBottom)
	}

	r.styles[k] = cs
	return cs
}

// borderStyle maps a line weight in points to the closest Excel style.
func borderStyle(weight float64) sml.ST_BorderStyle {
	switch {
	case weight <= 0.5:
		return sml.ST_BorderStyleThin
	case weight <= 1.5:
		return sml.ST_BorderStyleMedium
	default:
		return sml.ST_BorderStyleThick
	}
}

// cellRef returns the A1 reference of a zero-based column and one-based row.
func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", reference.IndexToColumn(uint32(col)), row)
}

// sheetName strips the characters Excel rejects in worksheet names.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if runes := []rune(s); len(runes) > maxSheetName {
		s = string(runes[:maxSheetName])
	}
	if s == "" {
		return "Sheet1"
	}
	return s
}
