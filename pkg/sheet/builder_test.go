package sheet

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/logsheet/pkg/workout"
)

// twoDays is shared by the tests of this package. Its grid:
//
//	 0  Monday, Thursday: Legs
//	 1  Date
//	 2  Nr. Exercise Reps Weight...
//	 3  1 Squat      4 × 8
//	 4  1 Lunge      8, 10
//	 5  2 Calf raise 3 × ∞
//	 6  Push
//	 7  Date
//	 8  Nr. Exercise Reps Weight...
//	 9  2 Bench      3 × 5
//	10  2 Dips
//	11  2 Push-up
func twoDays() *workout.Workout {
	return &workout.Workout{
		Days: []workout.Day{
			{
				ID:          1,
				Description: "Legs",
				Weekdays:    []workout.Weekday{workout.Weekday(time.Monday), workout.Weekday(time.Thursday)},
				Sets: []workout.Set{
					{ID: 1, Sets: 4, Exercises: []workout.Exercise{
						{Name: "Squat", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}}},
						{Name: "Lunge", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}, {SetID: 1, Reps: workout.Reps(10)}}},
					}},
					{ID: 2, Sets: 3, Exercises: []workout.Exercise{
						{Name: "Calf raise", Settings: []workout.Setting{{SetID: 2, Reps: workout.Reps(99)}}},
					}},
				},
			},
			{
				ID:          2,
				Description: "Push",
				Sets: []workout.Set{
					{ID: 3, Sets: 2},
					{ID: 4, Sets: 3, Exercises: []workout.Exercise{
						{Name: "Bench", Settings: []workout.Setting{{SetID: 4, Reps: workout.Reps(5)}, {SetID: 3, Reps: workout.Reps(12)}}},
						{Name: "Dips", Settings: []workout.Setting{{SetID: 4}}},
						{Name: "Push-up", Settings: []workout.Setting{{SetID: 4, Reps: workout.Reps(-1)}}},
					}},
				},
			},
		},
	}
}

func TestBuildRowCount(t *testing.T) {
	tests := []struct {
		name string
		w    *workout.Workout
		want int
	}{
		{"Nil", nil, 0},
		{"NoDays", &workout.Workout{}, 0},
		{"EmptyDay", &workout.Workout{Days: []workout.Day{{ID: 1, Description: "Rest"}}}, 3},
		{"TwoDays", twoDays(), 3*2 + 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := Build(tt.w, DefaultOptions())
			if g.RowCount() != tt.want {
				t.Errorf("RowCount() = %d, want %d", g.RowCount(), tt.want)
			}
			if g.Columns != 10 {
				t.Errorf("Columns = %d, want 10", g.Columns)
			}
			for i, row := range g.Rows {
				if len(row) != g.Columns {
					t.Errorf("row %d has %d cells, want %d", i, len(row), g.Columns)
				}
			}
		})
	}
}

func TestBuildRows(t *testing.T) {
	g, _ := Build(twoDays(), DefaultOptions())

	tests := []struct {
		row  int
		want []string
	}{
		{0, []string{"Monday, Thursday: Legs"}},
		{1, []string{"Date "}},
		{2, []string{"Nr.", "Exercise", "Reps", "Weight", "Weight", "Weight", "Weight", "Weight", "Weight", "Weight"}},
		{3, []string{"1", "Squat", "4 × 8"}},
		{4, []string{"1", "Lunge", "8, 10"}},
		{5, []string{"2", "Calf raise", "3 × ∞"}},
		{6, []string{"Push"}},
		{9, []string{"2", "Bench", "3 × 5"}},
		{10, []string{"2", "Dips", ""}},
		{11, []string{"2", "Push-up", ""}},
	}

	for _, tt := range tests {
		want := make([]string, g.Columns)
		copy(want, tt.want)
		if got := g.Rows[tt.row]; !reflect.DeepEqual(got, want) {
			t.Errorf("row %d = %q, want %q", tt.row, got, want)
		}
	}
}

func TestBuildMarkers(t *testing.T) {
	_, m := Build(twoDays(), DefaultOptions())

	wantDays := []DayMarker{
		{DayID: 1, Start: 0, End: 6, ExerciseRows: []int{3, 4, 5}},
		{DayID: 2, Start: 6, End: 12, ExerciseRows: []int{9, 10, 11}},
	}
	if !reflect.DeepEqual(m.Days, wantDays) {
		t.Errorf("Days = %+v, want %+v", m.Days, wantDays)
	}

	// Set 3 has no exercises and gets no marker.
	wantSets := []SetMarker{
		{DayID: 1, SetID: 1, First: 3, Last: 4},
		{DayID: 1, SetID: 2, First: 5, Last: 5},
		{DayID: 2, SetID: 4, First: 9, Last: 11},
	}
	if !reflect.DeepEqual(m.Sets, wantSets) {
		t.Errorf("Sets = %+v, want %+v", m.Sets, wantSets)
	}

	for i := 1; i < len(m.Days); i++ {
		if m.Days[i].Start != m.Days[i-1].End {
			t.Errorf("day %d starts at %d, previous ends at %d", i, m.Days[i].Start, m.Days[i-1].End)
		}
	}
}

func TestRepsText(t *testing.T) {
	tests := []struct {
		name     string
		sets     int
		settings []workout.Setting
		want     string
	}{
		{"None", 4, nil, ""},
		{"Single", 4, []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}}, "4 × 8"},
		{"SingleUnbounded", 3, []workout.Setting{{SetID: 1, Reps: workout.Reps(99)}}, "3 × ∞"},
		{"Several", 4, []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}, {SetID: 1, Reps: workout.Reps(10)}}, "8, 10"},
		{"SeveralUnbounded", 4, []workout.Setting{{SetID: 1, Reps: workout.Reps(12)}, {SetID: 1, Reps: workout.Reps(99)}}, "12, ∞"},
		{"Zero", 2, []workout.Setting{{SetID: 1, Reps: workout.Reps(0)}}, "2 × 0"},
		{"Missing", 4, []workout.Setting{{SetID: 1}}, ""},
		{"Negative", 4, []workout.Setting{{SetID: 1, Reps: workout.Reps(-3)}}, ""},
		{"MalformedDropped", 4, []workout.Setting{{SetID: 1, Reps: workout.Reps(-3)}, {SetID: 1, Reps: workout.Reps(6)}}, "4 × 6"},
		{"OtherSet", 4, []workout.Setting{{SetID: 2, Reps: workout.Reps(8)}}, ""},
	}

	b := &builder{opts: DefaultOptions()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := workout.Set{ID: 1, Sets: tt.sets}
			e := workout.Exercise{Name: "x", Settings: tt.settings}
			if got := b.repsText(s, e); got != tt.want {
				t.Errorf("repsText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildUnboundedNeverShowsSentinel(t *testing.T) {
	opts := DefaultOptions()
	opts.InfinityGlyph = "max"
	g, _ := Build(twoDays(), opts)

	got := g.Cell(5, ColReps)
	if !strings.HasSuffix(got, "max") || strings.Contains(got, "99") {
		t.Errorf("reps = %q, want suffix %q without 99", got, "max")
	}
}

func TestBuildTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Labels.Weekdays[time.Monday] = "Montag"

	tests := []struct {
		name string
		day  workout.Day
		want string
	}{
		{"NoWeekdays", workout.Day{Description: "Pull"}, "Pull"},
		{"Translated", workout.Day{Description: "Beine", Weekdays: []workout.Weekday{workout.Weekday(time.Monday)}}, "Montag: Beine"},
		{"InputOrder", workout.Day{Description: "Arms", Weekdays: []workout.Weekday{workout.Weekday(time.Friday), workout.Weekday(time.Tuesday)}}, "Friday, Tuesday: Arms"},
	}

	b := &builder{opts: opts}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.title(tt.day); got != tt.want {
				t.Errorf("title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCustomColumns(t *testing.T) {
	opts := DefaultOptions()
	opts.WeightColumns = 2
	opts.FirstWeightColumn = 5

	g, _ := Build(twoDays(), opts)
	if g.Columns != 7 {
		t.Fatalf("Columns = %d, want 7", g.Columns)
	}
	want := []string{"Nr.", "Exercise", "Reps", "", "", "Weight", "Weight"}
	if got := g.Rows[2]; !reflect.DeepEqual(got, want) {
		t.Errorf("caption = %q, want %q", got, want)
	}
}

func TestBuildZeroOptions(t *testing.T) {
	g, m := Build(twoDays(), Options{})
	if g.Columns != ColReps+1 {
		t.Fatalf("Columns = %d, want %d", g.Columns, ColReps+1)
	}
	if g.RowCount() != 12 || len(m.Days) != 2 {
		t.Fatalf("rows, days = %d, %d; want 12, 2", g.RowCount(), len(m.Days))
	}
	for i, row := range g.Rows {
		if len(row) != g.Columns {
			t.Errorf("row %d has %d cells, want %d", i, len(row), g.Columns)
		}
	}
	if got := g.Cell(3, ColExercise); got != "Squat" {
		t.Errorf("Cell(3, exercise) = %q, want %q", got, "Squat")
	}
}

func TestBuildDoesNotMutateWorkout(t *testing.T) {
	w := twoDays()
	before := twoDays()
	Build(w, DefaultOptions())
	if !reflect.DeepEqual(w, before) {
		t.Error("Build() modified its input")
	}
}
