package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	width int
}

// WithTextWidth limits the tables to w terminal columns.
func WithTextWidth(w int) TextOption {
	return func(r *textRenderer) { r.width = w }
}

// RenderText renders doc for a terminal. Each day becomes a titled table whose
// header is the caption row; filled cells keep their background colour when
// the terminal supports it.
func RenderText(doc Document, opts ...TextOption) ([]byte, error) {
	r := textRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var b strings.Builder
	if doc.Heading != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(doc.Heading))
		b.WriteString("\n\n")
	}

	l := doc.Layout
	if l.Empty() {
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(doc.EmptyMessage))
		b.WriteString("\n")
	} else {
		res := l.Resolve()
		for i, d := range l.Markers.Days {
			if i > 0 {
				b.WriteString("\n")
			}
			r.day(&b, l.Grid, res, d)
		}
	}

	if doc.Footer != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(doc.Footer))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func (r textRenderer) day(b *strings.Builder, g sheet.Grid, res *sheet.Resolved, d sheet.DayMarker) {
	title := res.Cells[d.TitleRow()][0]
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if title.Filled {
		titleStyle = titleStyle.Background(lipgloss.Color(title.Fill.Hex()))
	}
	b.WriteString(titleStyle.Render(g.Cell(d.TitleRow(), 0)))
	b.WriteString("\n")

	// Table rows are the date row followed by the exercise rows.
	gridRows := append([]int{d.DateRow()}, d.ExerciseRows...)
	rows := make([][]string, len(gridRows))
	for i, gr := range gridRows {
		rows[i] = make([]string, g.Columns)
		for col := range rows[i] {
			if !res.Hidden(gr, col) {
				rows[i][col] = g.Cell(gr, col)
			}
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.Rows[d.CaptionRow()]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true)
			}
			if row < 0 || row >= len(gridRows) {
				return base
			}
			s := res.Cells[gridRows[row]][col]
			if s.HAlign == sheet.AlignRight {
				base = base.Align(lipgloss.Right)
			}
			if s.Filled {
				base = base.Background(lipgloss.Color(s.Fill.Hex()))
			}
			return base
		})
	if r.width > 0 {
		t = t.Width(r.width)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
}
