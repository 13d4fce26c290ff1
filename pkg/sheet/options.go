package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/logsheet/pkg/errors"
)

// Default option values.
const (
	DefaultWeightColumns     = 7
	DefaultFirstWeightColumn = 3
	DefaultInfinityGlyph     = "∞"
)

// Fixed column positions. Weight columns start at [Options.FirstWeightColumn].
const (
	ColNumber   = 0
	ColExercise = 1
	ColReps     = 2
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Named colours used by the default options.
var (
	HeaderGreen = RGB{0x73, 0x8a, 0x5f}
	Lavender    = RGB{230, 230, 250}
)

// ParseRGB parses "#rrggbb" or "rrggbb".
func ParseRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// Labels are the fixed texts printed on a sheet. They are supplied already
// translated; see package i18n.
type Labels struct {
	Date     string
	Number   string
	Exercise string
	Reps     string
	Weight   string

	// Weekdays is indexed by time.Weekday. Empty entries fall back to the
	// English name.
	Weekdays [7]string

	// Empty replaces the table when a workout has no days.
	Empty string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	l := Labels{
		Date:     "Date",
		Number:   "Nr.",
		Exercise: "Exercise",
		Reps:     "Reps",
		Weight:   "Weight",
		Empty:    "This is an empty workout, what did you expect on the PDF?",
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		l.Weekdays[d] = d.String()
	}
	return l
}

// Weekday returns the label for d.
func (l Labels) Weekday(d time.Weekday) string {
	if d >= 0 && int(d) < len(l.Weekdays) && l.Weekdays[d] != "" {
		return l.Weekdays[d]
	}
	return d.String()
}

// Options configure the layout.
type Options struct {
	// WeightColumns is the number of blank log columns per row.
	WeightColumns int

	// FirstWeightColumn is the index of the first log column. Columns between
	// the reps column and this index stay empty and auto-sized.
	FirstWeightColumn int

	HeaderColor  RGB
	BandingColor RGB

	// InfinityGlyph replaces the unbounded repetition sentinel.
	InfinityGlyph string

	Labels Labels
}

// DefaultOptions returns seven log columns, the green header and lavender banding.
func DefaultOptions() Options {
	return Options{
		WeightColumns:     DefaultWeightColumns,
		FirstWeightColumn: DefaultFirstWeightColumn,
		HeaderColor:       HeaderGreen,
		BandingColor:      Lavender,
		InfinityGlyph:     DefaultInfinityGlyph,
		Labels:            DefaultLabels(),
	}
}

// Columns returns the total column count.
func (o Options) Columns() int {
	return o.FirstWeightColumn + o.WeightColumns
}

// Validate checks the options before a layout is computed.
func (o Options) Validate() error {
	if o.WeightColumns < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "weight columns must not be negative, got %d", o.WeightColumns)
	}
	if o.FirstWeightColumn < ColReps+1 {
		return errors.New(errors.ErrCodeInvalidOptions, "first weight column must be at least %d, got %d", ColReps+1, o.FirstWeightColumn)
	}
	if o.InfinityGlyph == "" {
		return errors.New(errors.ErrCodeInvalidOptions, "infinity glyph must not be empty")
	}
	return nil
}
