package sheet

import (
	"github.com/matzehuels/logsheet/pkg/workout"
)

// Layout is a computed sheet, ready for a sink.
type Layout struct {
	Grid       Grid
	Markers    Markers
	Directives []Directive
	Widths     []float64
}

// Empty reports whether the sheet has no table.
func (l Layout) Empty() bool { return l.Grid.RowCount() == 0 }

// Resolve folds the directives into per-cell styles.
func (l Layout) Resolve() *Resolved {
	return Resolve(l.Directives, l.Grid.RowCount(), l.Grid.Columns)
}

// Compute validates opts and lays out w. The only errors come from invalid
// options; the workout is expected to have passed [workout.Workout.Validate].
func Compute(w *workout.Workout, opts Options) (Layout, error) {
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}
	grid, markers := Build(w, opts)
	return Layout{
		Grid:       grid,
		Markers:    markers,
		Directives: Compile(markers, grid.RowCount(), opts),
		Widths:     ColumnWidths(opts),
	}, nil
}
