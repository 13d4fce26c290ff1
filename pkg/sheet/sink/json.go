package sink

import (
	"encoding/json"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	resolved bool
}

// WithJSONResolved adds the merged rectangles and row blocks computed by
// [sheet.Resolve], for consumers that do not want to fold directives.
func WithJSONResolved() JSONOption { return func(r *jsonRenderer) { r.resolved = true } }

type jsonOutput struct {
	Title      string           `json:"title,omitempty"`
	Author     string           `json:"author,omitempty"`
	Subject    string           `json:"subject,omitempty"`
	Heading    string           `json:"heading,omitempty"`
	Footer     string           `json:"footer,omitempty"`
	Empty      string           `json:"empty_message,omitempty"`
	Columns    int              `json:"columns"`
	Rows       [][]string       `json:"rows"`
	Widths     []float64        `json:"widths"`
	Directives []jsonDirective  `json:"directives"`
	Merges     []sheet.Merge    `json:"merges,omitempty"`
	Blocks     []sheet.RowBlock `json:"blocks,omitempty"`
}

type jsonDirective struct {
	Kind    sheet.EffectKind `json:"kind"`
	Region  [4]int           `json:"region"`
	Color   string           `json:"color,omitempty"`
	Border  string           `json:"border,omitempty"`
	Weight  float64          `json:"weight,omitempty"`
	Align   sheet.AlignMode  `json:"align,omitempty"`
	Font    string           `json:"font,omitempty"`
	Size    float64          `json:"size,omitempty"`
	Padding *[4]float64      `json:"padding,omitempty"`
}

// RenderJSON exports the grid, the directives as tagged objects and the
// column widths. Regions are [colStart, rowStart, colEnd, rowEnd] with -1
// meaning the last column or row; padding is [left, right, top, bottom].
func RenderJSON(doc Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	l := doc.Layout
	out := jsonOutput{
		Title:      doc.Title,
		Author:     doc.Author,
		Subject:    doc.Subject,
		Heading:    doc.Heading,
		Footer:     doc.Footer,
		Columns:    l.Grid.Columns,
		Rows:       l.Grid.Rows,
		Widths:     l.Widths,
		Directives: make([]jsonDirective, 0, len(l.Directives)),
	}
	if out.Rows == nil {
		out.Rows = [][]string{}
	}
	if l.Empty() {
		out.Empty = doc.EmptyMessage
	}
	for _, d := range l.Directives {
		out.Directives = append(out.Directives, toJSONDirective(d))
	}
	if r.resolved && !l.Empty() {
		res := l.Resolve()
		out.Merges = res.Merges
		out.Blocks = res.Blocks()
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONDirective(d sheet.Directive) jsonDirective {
	jd := jsonDirective{
		Kind:   d.Effect.Kind(),
		Region: [4]int{d.Region.ColStart, d.Region.RowStart, d.Region.ColEnd, d.Region.RowEnd},
	}
	switch e := d.Effect.(type) {
	case sheet.Fill:
		jd.Color = e.Color.Hex()
	case sheet.Border:
		jd.Border = e.Lines.String()
		jd.Weight = e.Weight
	case sheet.Align:
		jd.Align = e.Mode
	case sheet.Font:
		jd.Font, jd.Size = e.Name, e.Size
	case sheet.Padding:
		jd.Padding = &[4]float64{e.Left, e.Right, e.Top, e.Bottom}
	}
	return jd
}
