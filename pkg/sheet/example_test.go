package sheet_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/logsheet/pkg/sheet"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func ExampleCompute() {
	w := &workout.Workout{
		Days: []workout.Day{{
			ID:          1,
			Description: "Pull",
			Sets: []workout.Set{{
				ID:   1,
				Sets: 4,
				Exercises: []workout.Exercise{
					{Name: "Row", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}}},
					{Name: "Chin-up", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(99)}}},
				},
			}},
		}},
	}

	opts := sheet.DefaultOptions()
	opts.WeightColumns = 2

	l, err := sheet.Compute(w, opts)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, row := range l.Grid.Rows {
		fmt.Println(strings.Join(row, "|"))
	}
	fmt.Println("Widths:", l.Widths)
	// Output:
	// Pull||||
	// Date ||||
	// Nr.|Exercise|Reps|Weight|Weight
	// 1|Row|4 × 8||
	// 1|Chin-up|4 × ∞||
	// Widths: [0.6 3.5 1.9 1.8 1.8]
}

func ExampleLayout_Resolve() {
	w := &workout.Workout{
		Days: []workout.Day{{
			ID:          1,
			Description: "Core",
			Sets: []workout.Set{{
				ID:   1,
				Sets: 3,
				Exercises: []workout.Exercise{
					{Name: "Plank"},
					{Name: "Crunch"},
				},
			}},
		}},
	}

	l, _ := sheet.Compute(w, sheet.DefaultOptions())
	r := l.Resolve()
	for _, m := range r.Merges {
		fmt.Printf("row %d col %d: %d×%d\n", m.Row, m.Col, m.Rows, m.Cols)
	}
	// Output:
	// row 0 col 0: 1×10
	// row 1 col 0: 1×3
	// row 3 col 0: 2×1
}
