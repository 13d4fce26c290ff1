package sheet

// Grid is the row-major cell text of a sheet. Every row has Columns cells.
type Grid struct {
	Columns int
	Rows    [][]string
}

// RowCount returns the number of rows.
func (g Grid) RowCount() int { return len(g.Rows) }

// Cell returns the text at (row, col), or "" outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return ""
	}
	return g.Rows[row][col]
}

// Markers is the bookkeeping recorded while the grid is built. The style
// compiler works from markers and the row count only.
type Markers struct {
	Days []DayMarker
	Sets []SetMarker
}

// DayMarker covers the rows of one day. End is exclusive, so consecutive days
// share no rows: the next day's Start equals this day's End.
type DayMarker struct {
	DayID int
	Start int
	End   int

	// ExerciseRows lists the exercise rows of the day in order.
	ExerciseRows []int
}

// TitleRow, DateRow and CaptionRow return the header rows of the day.
func (d DayMarker) TitleRow() int   { return d.Start }
func (d DayMarker) DateRow() int    { return d.Start + 1 }
func (d DayMarker) CaptionRow() int { return d.Start + 2 }

// SetMarker covers the exercise rows of one set, First and Last inclusive.
// Sets without exercises have no marker.
type SetMarker struct {
	DayID int
	SetID int
	First int
	Last  int
}

// Len returns the number of rows covered.
func (s SetMarker) Len() int { return s.Last - s.First + 1 }
