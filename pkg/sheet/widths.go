package sheet

// Column widths in centimetres.
const (
	Auto          = 0.0
	NumberWidth   = 0.6
	ExerciseWidth = 3.5
	RepsWidth     = 1.9
	WeightWidth   = 1.8
)

// ColumnWidths returns one width per column. It depends on the options only,
// never on cell contents. Columns without a fixed width are [Auto].
func ColumnWidths(opts Options) []float64 {
	widths := make([]float64, max(opts.Columns(), 0))
	copy(widths, []float64{NumberWidth, ExerciseWidth, RepsWidth})
	for c := max(opts.FirstWeightColumn, 0); c < len(widths); c++ {
		widths[c] = WeightWidth
	}
	return widths
}
