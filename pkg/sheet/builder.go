package sheet

import (
	"strconv"
	"strings"

	"github.com/matzehuels/logsheet/pkg/workout"
)

// headerRows is the number of rows every day starts with.
const headerRows = 3

// Build flattens w into a grid and records the markers needed for styling.
//
// Each day emits a title row, a date row and a caption row, then one row per
// exercise of each of its sets:
//
//	[set number, exercise name, reps, "" ...]
//
// The set number restarts at 1 for every day. A nil or day-less workout
// yields an empty grid. Options that fail [Options.Validate] still build:
// the grid keeps at least the three label columns.
func Build(w *workout.Workout, opts Options) (Grid, Markers) {
	b := &builder{opts: opts, cols: max(opts.Columns(), ColReps+1)}
	if w != nil {
		for _, d := range w.Days {
			b.day(d)
		}
	}
	return Grid{Columns: b.cols, Rows: b.rows}, b.markers
}

type builder struct {
	opts    Options
	cols    int
	rows    [][]string
	markers Markers
}

func (b *builder) day(d workout.Day) {
	dm := DayMarker{DayID: d.ID, Start: len(b.rows)}

	title := b.blank()
	title[0] = b.title(d)
	b.rows = append(b.rows, title)

	// The date label goes in the first cell; the compiler spans it over the
	// first three columns and aligns it right.
	date := b.blank()
	date[0] = b.opts.Labels.Date + " "
	b.rows = append(b.rows, date)

	caption := b.blank()
	caption[ColNumber] = b.opts.Labels.Number
	caption[ColExercise] = b.opts.Labels.Exercise
	caption[ColReps] = b.opts.Labels.Reps
	for c := max(b.opts.FirstWeightColumn, ColReps+1); c < b.cols; c++ {
		caption[c] = b.opts.Labels.Weight
	}
	b.rows = append(b.rows, caption)

	counter := 1
	for _, s := range d.Sets {
		marker := -1
		for _, e := range s.Exercises {
			row := len(b.rows)
			if marker < 0 {
				b.markers.Sets = append(b.markers.Sets, SetMarker{DayID: d.ID, SetID: s.ID, First: row, Last: row})
				marker = len(b.markers.Sets) - 1
			}
			b.markers.Sets[marker].Last = row
			dm.ExerciseRows = append(dm.ExerciseRows, row)

			cells := b.blank()
			cells[ColNumber] = strconv.Itoa(counter)
			cells[ColExercise] = e.Name
			cells[ColReps] = b.repsText(s, e)
			b.rows = append(b.rows, cells)
		}
		counter++
	}

	dm.End = len(b.rows)
	b.markers.Days = append(b.markers.Days, dm)
}

// title joins the weekday labels and appends the description.
func (b *builder) title(d workout.Day) string {
	if len(d.Weekdays) == 0 {
		return d.Description
	}
	names := make([]string, len(d.Weekdays))
	for i, wd := range d.Weekdays {
		names[i] = b.opts.Labels.Weekday(wd.Std())
	}
	return strings.Join(names, ", ") + ": " + d.Description
}

// repsText renders the settings of e within s. A single setting is shown
// with the set multiplier ("4 × 8"); several settings already spell out
// every round, so they are listed without it ("8, 10").
func (b *builder) repsText(s workout.Set, e workout.Exercise) string {
	var reps []string
	for _, st := range e.SettingsFor(s.ID) {
		if !st.Valid() {
			continue
		}
		if st.Unbounded() {
			reps = append(reps, b.opts.InfinityGlyph)
		} else {
			reps = append(reps, strconv.Itoa(*st.Reps))
		}
	}

	switch len(reps) {
	case 0:
		return ""
	case 1:
		return strconv.Itoa(s.Sets) + " × " + reps[0]
	default:
		return strings.Join(reps, ", ")
	}
}

func (b *builder) blank() []string {
	return make([]string, b.cols)
}
