package sink

import (
	"github.com/matzehuels/logsheet/pkg/sheet"
)

// Document is a layout plus the texts printed around it.
type Document struct {
	Layout sheet.Layout

	// Metadata.
	Title   string
	Author  string
	Subject string

	// Heading is printed bold and centred above the table when set.
	Heading string
	// Footer is printed below the table when set.
	Footer string
	// EmptyMessage replaces the table of an empty layout.
	EmptyMessage string
}

// minAutoWidth is the narrowest an auto-sized column gets, in centimetres.
const minAutoWidth = 0.5

// fitWidths resolves [sheet.Auto] columns: they share whatever the fixed
// columns leave of avail, but never shrink below minAutoWidth.
func fitWidths(widths []float64, avail float64) []float64 {
	out := make([]float64, len(widths))
	fixed, autos := 0.0, 0
	for _, w := range widths {
		if w == sheet.Auto {
			autos++
		}
		fixed += w
	}
	share := minAutoWidth
	if autos > 0 {
		share = max((avail-fixed)/float64(autos), minAutoWidth)
	}
	for i, w := range widths {
		if w == sheet.Auto {
			w = share
		}
		out[i] = w
	}
	return out
}

// span returns the rows and columns covered by the cell anchored at (row, col).
func span(r *sheet.Resolved, row, col int) (rows, cols int) {
	if m, ok := r.MergeAt(row, col); ok {
		return m.Rows, m.Cols
	}
	return 1, 1
}
