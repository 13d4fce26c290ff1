package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/logsheet/pkg/buildinfo"
	"github.com/matzehuels/logsheet/pkg/i18n"
	"github.com/matzehuels/logsheet/pkg/sheet"
	"github.com/matzehuels/logsheet/pkg/sheet/sink"
	"github.com/matzehuels/logsheet/pkg/workout"
)

// NewDocument wraps a layout with the translated texts printed around it.
// The footer is dated with the workout's creation day, or today for
// workouts that have none.
func NewDocument(l sheet.Layout, w *workout.Workout, tr i18n.Translator, opts Options) sink.Document {
	created := w.CreatedAt
	if created.IsZero() {
		created = opts.Today
		if created.IsZero() {
			created = time.Now()
		}
	}
	product := fmt.Sprintf("%s v%s", opts.Product, buildinfo.ShortVersion())

	return sink.Document{
		Layout:       l,
		Title:        tr.Title(),
		Author:       opts.Product,
		Subject:      tr.Subject(opts.Username),
		Heading:      w.Comment,
		Footer:       tr.Footer(created, product),
		EmptyMessage: tr.Labels().Empty,
	}
}

// Render produces one format from a document. Workouts with a creation time
// render to identical bytes on every run.
func Render(doc sink.Document, format string, created time.Time, opts Options) ([]byte, error) {
	switch format {
	case FormatPDF:
		var pdfOpts []sink.PDFOption
		if opts.FontPath != "" {
			pdfOpts = append(pdfOpts, sink.WithPDFUTF8Font(opts.FontFamily, opts.FontPath))
		}
		if !created.IsZero() {
			pdfOpts = append(pdfOpts, sink.WithPDFCreationDate(created))
		}
		return sink.RenderPDF(doc, pdfOpts...)
	case FormatHTML:
		return sink.RenderHTML(doc)
	case FormatXLSX:
		return sink.RenderXLSX(doc)
	case FormatJSON:
		return sink.RenderJSON(doc, sink.WithJSONResolved())
	case FormatText:
		return sink.RenderText(doc)
	default:
		return nil, ValidateFormat(format)
	}
}
