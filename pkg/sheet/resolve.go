package sheet

// CellStyle is the effective style of one cell after all directives applied.
type CellStyle struct {
	Fill     RGB
	Filled   bool
	HAlign   AlignMode
	VAlign   AlignMode
	Font     string
	FontSize float64
	Padding  Padding
}

// defaultCellStyle applies before any directive.
var defaultCellStyle = CellStyle{
	HAlign:   AlignLeft,
	VAlign:   AlignBottom,
	Font:     DefaultFont,
	FontSize: 10,
	Padding:  Padding{Left: 6, Right: 6, Top: 3, Bottom: 3},
}

// Merge is a rectangle of cells drawn as one, anchored at its top-left cell.
type Merge struct {
	Col  int `json:"col"`
	Row  int `json:"row"`
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// Contains reports whether (row, col) lies inside m.
func (m Merge) Contains(row, col int) bool {
	return row >= m.Row && row < m.Row+m.Rows && col >= m.Col && col < m.Col+m.Cols
}

func (m Merge) overlaps(o Merge) bool {
	return m.Col < o.Col+o.Cols && o.Col < m.Col+m.Cols &&
		m.Row < o.Row+o.Rows && o.Row < m.Row+m.Rows
}

// RowBlock is a run of rows, End exclusive, that a page break must not split
// because merged cells join them.
type RowBlock struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Resolved is a directive list folded into per-cell state. Later directives
// override earlier ones; a span drops earlier spans it overlaps.
type Resolved struct {
	Rows, Cols int
	Cells      [][]CellStyle
	Merges     []Merge

	hlines [][]float64 // [Rows+1][Cols]: line above row r in column c
	vlines [][]float64 // [Rows][Cols+1]: line left of column c in row r
	owner  [][]int     // merge index per cell, -1 when unmerged
}

// Resolve applies ds in order to a grid of rows × cols cells.
func Resolve(ds []Directive, rows, cols int) *Resolved {
	r := &Resolved{Rows: rows, Cols: cols}
	r.Cells = make([][]CellStyle, rows)
	r.vlines = make([][]float64, rows)
	for i := range r.Cells {
		r.Cells[i] = make([]CellStyle, cols)
		for j := range r.Cells[i] {
			r.Cells[i][j] = defaultCellStyle
		}
		r.vlines[i] = make([]float64, cols+1)
	}
	r.hlines = make([][]float64, rows+1)
	for i := range r.hlines {
		r.hlines[i] = make([]float64, cols)
	}

	for _, d := range ds {
		c0, r0, c1, r1, ok := d.Region.Bounds(cols, rows)
		if !ok {
			continue
		}
		switch e := d.Effect.(type) {
		case Fill:
			r.each(c0, r0, c1, r1, func(s *CellStyle) { s.Fill, s.Filled = e.Color, true })
		case Border:
			r.border(e, c0, r0, c1, r1)
		case Span:
			r.span(Merge{Col: c0, Row: r0, Cols: c1 - c0 + 1, Rows: r1 - r0 + 1})
		case Align:
			if e.Mode.Vertical() {
				r.each(c0, r0, c1, r1, func(s *CellStyle) { s.VAlign = e.Mode })
			} else {
				r.each(c0, r0, c1, r1, func(s *CellStyle) { s.HAlign = e.Mode })
			}
		case Font:
			r.each(c0, r0, c1, r1, func(s *CellStyle) { s.Font, s.FontSize = e.Name, e.Size })
		case Padding:
			r.each(c0, r0, c1, r1, func(s *CellStyle) { s.Padding = e })
		}
	}

	r.index()
	return r
}

func (r *Resolved) each(c0, r0, c1, r1 int, fn func(*CellStyle)) {
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			fn(&r.Cells[row][col])
		}
	}
}

func (r *Resolved) border(b Border, c0, r0, c1, r1 int) {
	switch b.Lines {
	case BorderGrid:
		for row := r0 + 1; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				r.hlines[row][col] = b.Weight
			}
		}
		for row := r0; row <= r1; row++ {
			for col := c0 + 1; col <= c1; col++ {
				r.vlines[row][col] = b.Weight
			}
		}
	case BorderBox:
		for col := c0; col <= c1; col++ {
			r.hlines[r0][col] = b.Weight
			r.hlines[r1+1][col] = b.Weight
		}
		for row := r0; row <= r1; row++ {
			r.vlines[row][c0] = b.Weight
			r.vlines[row][c1+1] = b.Weight
		}
	}
}

func (r *Resolved) span(m Merge) {
	kept := r.Merges[:0]
	for _, old := range r.Merges {
		if !old.overlaps(m) {
			kept = append(kept, old)
		}
	}
	r.Merges = kept
	if m.Cols > 1 || m.Rows > 1 {
		r.Merges = append(r.Merges, m)
	}
}

func (r *Resolved) index() {
	r.owner = make([][]int, r.Rows)
	for row := range r.owner {
		r.owner[row] = make([]int, r.Cols)
		for col := range r.owner[row] {
			r.owner[row][col] = -1
		}
	}
	for i, m := range r.Merges {
		for row := m.Row; row < m.Row+m.Rows; row++ {
			for col := m.Col; col < m.Col+m.Cols; col++ {
				r.owner[row][col] = i
			}
		}
	}
}

func (r *Resolved) ownerAt(row, col int) int {
	if row < 0 || row >= r.Rows || col < 0 || col >= r.Cols {
		return -1
	}
	return r.owner[row][col]
}

// MergeAt returns the merge anchored at (row, col).
func (r *Resolved) MergeAt(row, col int) (Merge, bool) {
	if i := r.ownerAt(row, col); i >= 0 {
		m := r.Merges[i]
		if m.Row == row && m.Col == col {
			return m, true
		}
	}
	return Merge{}, false
}

// Hidden reports whether (row, col) is covered by a merge anchored elsewhere.
func (r *Resolved) Hidden(row, col int) bool {
	i := r.ownerAt(row, col)
	if i < 0 {
		return false
	}
	m := r.Merges[i]
	return m.Row != row || m.Col != col
}

// HLine returns the weight of the line above row (row == Rows is the bottom
// edge) in column col. Lines inside a merge are not drawn.
func (r *Resolved) HLine(row, col int) float64 {
	if row < 0 || row > r.Rows || col < 0 || col >= r.Cols {
		return 0
	}
	if a := r.ownerAt(row-1, col); a >= 0 && a == r.ownerAt(row, col) {
		return 0
	}
	return r.hlines[row][col]
}

// VLine returns the weight of the line left of col (col == Cols is the right
// edge) in row. Lines inside a merge are not drawn.
func (r *Resolved) VLine(row, col int) float64 {
	if row < 0 || row >= r.Rows || col < 0 || col > r.Cols {
		return 0
	}
	if a := r.ownerAt(row, col-1); a >= 0 && a == r.ownerAt(row, col) {
		return 0
	}
	return r.vlines[row][col]
}

// Blocks partitions the rows into runs joined by vertically merged cells.
func (r *Resolved) Blocks() []RowBlock {
	joined := make([]bool, r.Rows) // joined[i]: row i continues into row i+1
	for _, m := range r.Merges {
		for row := m.Row; row < m.Row+m.Rows-1; row++ {
			joined[row] = true
		}
	}

	var blocks []RowBlock
	start := 0
	for row := 0; row < r.Rows; row++ {
		if !joined[row] {
			blocks = append(blocks, RowBlock{Start: start, End: row + 1})
			start = row + 1
		}
	}
	return blocks
}
