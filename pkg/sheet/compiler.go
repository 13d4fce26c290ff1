package sheet

// Baseline table style.
const (
	InnerGridWeight = 0.25
	BoxWeight       = 1.25
	DefaultFont     = "Helvetica"
	DefaultFontSize = 8.0
)

// DefaultPadding is the cell padding of the baseline style, in points.
var DefaultPadding = Padding{Left: 2, Right: 0, Top: 3, Bottom: 2}

// Compile turns markers into style directives for a grid of rows rows.
//
// The order is fixed so that a last-wins renderer draws day headers over the
// table baseline and banding over everything else:
//
//  1. baseline: inner grid, outer box, font, middle alignment, padding
//  2. per day: header fill and boxes, title span, date label span
//  3. per set: column 0 merged over the set's exercise rows
//  4. per day: banding of every other exercise row
//
// An empty grid gets no directives at all.
func Compile(m Markers, rows int, opts Options) []Directive {
	if rows == 0 {
		return nil
	}

	var ds directives
	ds.add(All, Border{Lines: BorderGrid, Weight: InnerGridWeight})
	ds.add(All, Border{Lines: BorderBox, Weight: BoxWeight})
	ds.add(All, Font{Name: DefaultFont, Size: DefaultFontSize})
	ds.add(All, Align{Mode: AlignMiddle})
	ds.add(All, DefaultPadding)

	for _, d := range m.Days {
		title := RowRegion(d.TitleRow())
		header := Region{ColStart: 0, RowStart: d.TitleRow(), ColEnd: Last, RowEnd: d.Start + headerRows - 1}
		date := Region{ColStart: ColNumber, RowStart: d.DateRow(), ColEnd: ColReps, RowEnd: d.DateRow()}

		ds.add(title, Fill{Color: opts.HeaderColor})
		ds.add(title, Border{Lines: BorderBox, Weight: BoxWeight})
		ds.add(header, Border{Lines: BorderBox, Weight: BoxWeight})
		ds.add(title, Span{})
		ds.add(title, Align{Mode: AlignCenter})
		ds.add(date, Align{Mode: AlignRight})
		ds.add(date, Span{})
	}

	for _, s := range m.Sets {
		number := Region{ColStart: ColNumber, RowStart: s.First, ColEnd: ColNumber, RowEnd: s.Last}
		ds.add(number, Align{Mode: AlignMiddle})
		ds.add(number, Span{})
	}

	// Positions are counted from 1 within each day; every even position fills
	// the row before it, which is the previous exercise row of the same day.
	for _, d := range m.Days {
		for i, row := range d.ExerciseRows {
			if (i+1)%2 != 0 {
				continue
			}
			ds.add(Region{ColStart: ColExercise, RowStart: row - 1, ColEnd: Last, RowEnd: row - 1}, Fill{Color: opts.BandingColor})
		}
	}

	return ds
}

type directives []Directive

func (ds *directives) add(r Region, e Effect) {
	*ds = append(*ds, Directive{Region: r, Effect: e})
}
