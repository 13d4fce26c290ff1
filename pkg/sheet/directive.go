package sheet

import "fmt"

// Last addresses the last row or column of the grid in a [Region].
const Last = -1

// Region is a rectangle of cells, all bounds inclusive. Negative end
// coordinates count from the end of the grid.
type Region struct {
	ColStart int
	RowStart int
	ColEnd   int
	RowEnd   int
}

// All covers the whole grid.
var All = Region{0, 0, Last, Last}

// RowRegion covers every column of one row.
func RowRegion(row int) Region {
	return Region{ColStart: 0, RowStart: row, ColEnd: Last, RowEnd: row}
}

// Bounds returns the region with negative coordinates resolved against a
// grid of the given size and clamped to it. ok is false when the region does
// not intersect the grid.
func (r Region) Bounds(cols, rows int) (c0, r0, c1, r1 int, ok bool) {
	abs := func(v, n int) int {
		if v < 0 {
			return n + v
		}
		return v
	}
	c0, r0 = abs(r.ColStart, cols), abs(r.RowStart, rows)
	c1, r1 = abs(r.ColEnd, cols), abs(r.RowEnd, rows)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, cols-1), min(r1, rows-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.ColStart, r.RowStart, r.ColEnd, r.RowEnd)
}

// EffectKind names an effect variant.
type EffectKind string

// Effect kinds.
const (
	KindFill    EffectKind = "fill"
	KindBorder  EffectKind = "border"
	KindSpan    EffectKind = "span"
	KindAlign   EffectKind = "align"
	KindFont    EffectKind = "font"
	KindPadding EffectKind = "padding"
)

// Effect is one of [Fill], [Border], [Span], [Align], [Font] or [Padding].
type Effect interface {
	Kind() EffectKind
}

// Fill paints the cell background.
type Fill struct {
	Color RGB
}

// BorderKind selects which lines of a region a [Border] draws.
type BorderKind int

const (
	// BorderGrid draws the lines between cells inside the region.
	BorderGrid BorderKind = iota
	// BorderBox draws the outline of the region.
	BorderBox
)

func (k BorderKind) String() string {
	if k == BorderBox {
		return "box"
	}
	return "grid"
}

// Border strokes lines with the given weight in points.
type Border struct {
	Lines  BorderKind
	Weight float64
}

// Span merges the region into one cell showing the top-left text.
type Span struct{}

// AlignMode is a horizontal or vertical text alignment.
type AlignMode string

// Alignment modes.
const (
	AlignLeft   AlignMode = "LEFT"
	AlignCenter AlignMode = "CENTER"
	AlignRight  AlignMode = "RIGHT"
	AlignTop    AlignMode = "TOP"
	AlignMiddle AlignMode = "MIDDLE"
	AlignBottom AlignMode = "BOTTOM"
)

// Vertical reports whether m positions text vertically.
func (m AlignMode) Vertical() bool {
	return m == AlignTop || m == AlignMiddle || m == AlignBottom
}

// Align positions text within its cell.
type Align struct {
	Mode AlignMode
}

// Font sets the typeface and size in points.
type Font struct {
	Name string
	Size float64
}

// Padding sets the inner cell padding in points.
type Padding struct {
	Left, Right, Top, Bottom float64
}

func (Fill) Kind() EffectKind    { return KindFill }
func (Border) Kind() EffectKind  { return KindBorder }
func (Span) Kind() EffectKind    { return KindSpan }
func (Align) Kind() EffectKind   { return KindAlign }
func (Font) Kind() EffectKind    { return KindFont }
func (Padding) Kind() EffectKind { return KindPadding }

// Directive applies one effect to one region.
type Directive struct {
	Region Region
	Effect Effect
}

func (d Directive) String() string {
	return fmt.Sprintf("%s %s %+v", d.Effect.Kind(), d.Region, d.Effect)
}
