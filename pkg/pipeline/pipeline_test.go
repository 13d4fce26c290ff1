package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/cache"
	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/observability"
	"github.com/matzehuels/logsheet/pkg/sheet"
	"github.com/matzehuels/logsheet/pkg/workout"
)

var created = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func testWorkout() *workout.Workout {
	return &workout.Workout{
		ID:        uuid.MustParse("8d7c1f0e-8f7e-4a59-9c53-0d2f8e0f6b11"),
		Owner:     "anna",
		Comment:   "Spring block",
		CreatedAt: created,
		Days: []workout.Day{{
			ID:          1,
			Description: "Legs",
			Weekdays:    []workout.Weekday{workout.Weekday(time.Monday)},
			Sets: []workout.Set{{
				ID:   1,
				Sets: 3,
				Exercises: []workout.Exercise{
					{ID: 1, Name: "Squat", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}}},
					{ID: 2, Name: "Lunge", Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(99)}}},
				},
			}},
		}},
	}
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pdf", false},
		{"html", false},
		{"xlsx", false},
		{"json", false},
		{"txt", false},
		{"svg", true},
		{"PDF", true}, // normalized by ValidateAndSetDefaults, not here
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", o.Formats)
	}
	if o.WeightColumns != sheet.DefaultWeightColumns {
		t.Errorf("WeightColumns = %d, want %d", o.WeightColumns, sheet.DefaultWeightColumns)
	}
	if o.FirstWeightColumn != sheet.DefaultFirstWeightColumn {
		t.Errorf("FirstWeightColumn = %d, want %d", o.FirstWeightColumn, sheet.DefaultFirstWeightColumn)
	}
	if o.Username != DefaultUsername || o.Product != "logsheet" {
		t.Errorf("Username, Product = %q, %q", o.Username, o.Product)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent.
	before := o.Formats
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != len(before) {
		t.Errorf("second call changed Formats to %v", o.Formats)
	}
}

func TestValidateAndSetDefaultsFormats(t *testing.T) {
	o := Options{Formats: []string{" PDF", "xlsx", "pdf", "txt"}}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	want := []string{"pdf", "xlsx", "txt"}
	if strings.Join(o.Formats, ",") != strings.Join(want, ",") {
		t.Errorf("Formats = %v, want %v", o.Formats, want)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"header colour", Options{HeaderColor: "green"}, errors.ErrCodeInvalidOptions},
		{"banding colour", Options{BandingColor: "#12345"}, errors.ErrCodeInvalidOptions},
		{"weight columns", Options{WeightColumns: -1}, errors.ErrCodeInvalidOptions},
		{"first weight column", Options{FirstWeightColumn: 2}, errors.ErrCodeInvalidOptions},
		{"username", Options{Username: "a b"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestSheetOptions(t *testing.T) {
	o := Options{WeightColumns: 4, HeaderColor: "#102030", InfinityGlyph: "max"}
	so, err := o.SheetOptions(sheet.DefaultLabels())
	if err != nil {
		t.Fatal(err)
	}
	if so.WeightColumns != 4 || so.FirstWeightColumn != sheet.DefaultFirstWeightColumn {
		t.Errorf("columns = %d/%d, want 4/%d", so.WeightColumns, so.FirstWeightColumn, sheet.DefaultFirstWeightColumn)
	}
	if so.HeaderColor != (sheet.RGB{R: 0x10, G: 0x20, B: 0x30}) {
		t.Errorf("HeaderColor = %v, want #102030", so.HeaderColor)
	}
	if so.BandingColor != sheet.Lavender {
		t.Errorf("BandingColor = %v, want %v", so.BandingColor, sheet.Lavender)
	}
	if so.InfinityGlyph != "max" {
		t.Errorf("InfinityGlyph = %q, want max", so.InfinityGlyph)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		lang, format, want string
	}{
		{"", "pdf", "Workout.pdf"},
		{"en-GB", "xlsx", "Workout.xlsx"},
		{"de", "pdf", "Training.pdf"},
		{"de-AT, en;q=0.5", "html", "Training.html"},
	}
	for _, tt := range tests {
		o := Options{Language: tt.lang}
		if got := o.Filename(tt.format); got != tt.want {
			t.Errorf("Filename(%q) with language %q = %q, want %q", tt.format, tt.lang, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("pdf"); got != "application/pdf" {
		t.Errorf("ContentType(pdf) = %q", got)
	}
	if got := ContentType("bin"); got != "application/octet-stream" {
		t.Errorf("ContentType(bin) = %q", got)
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), testWorkout(), Options{
		Formats:  Formats,
		Username: "anna",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, f := range Formats {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf artifact does not start with %PDF")
	}
	if !bytes.HasPrefix(res.Artifacts["xlsx"], []byte("PK")) {
		t.Error("xlsx artifact is not a zip archive")
	}
	if !bytes.Contains(res.Artifacts["txt"], []byte("Squat")) {
		t.Error("text artifact should list the exercises")
	}

	doc := res.Document
	if doc.Title != "Workout" || doc.Author != "logsheet" || doc.Subject != "Workout for anna" {
		t.Errorf("metadata = %q/%q/%q", doc.Title, doc.Author, doc.Subject)
	}
	if doc.Heading != "Spring block" {
		t.Errorf("Heading = %q, want the workout comment", doc.Heading)
	}
	if want := "Created on the 05.03.2024 - logsheet v"; !strings.HasPrefix(doc.Footer, want) {
		t.Errorf("Footer = %q, want prefix %q", doc.Footer, want)
	}

	// Title, date and caption rows plus two exercise rows.
	if res.Stats.Rows != 5 || res.Stats.Days != 1 {
		t.Errorf("Stats = %+v, want 1 day and 5 rows", res.Stats)
	}
	if res.WorkoutHash == "" {
		t.Error("WorkoutHash should be set")
	}
	if res.CacheInfo.RenderHit || len(res.CacheInfo.Hits) != 0 {
		t.Errorf("CacheInfo = %+v, want no hits with a null cache", res.CacheInfo)
	}
}

func TestExecuteGerman(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), testWorkout(), Options{
		Formats:  []string{FormatJSON},
		Language: "de",
		Username: "anna",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Document.Title != "Training" {
		t.Errorf("Title = %q, want Training", res.Document.Title)
	}
	if !strings.HasPrefix(res.Document.Footer, "Erstellt am 05.03.2024") {
		t.Errorf("Footer = %q", res.Document.Footer)
	}
	if got := res.Layout.Grid.Cell(0, 0); got != "Montag: Legs" {
		t.Errorf("title cell = %q, want %q", got, "Montag: Legs")
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	opts := Options{Formats: []string{FormatPDF, FormatJSON}}

	first, err := r.Execute(ctx, testWorkout(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.CacheInfo.Hits) != 0 {
		t.Fatalf("first run hits = %v, want none", first.CacheInfo.Hits)
	}

	second, err := r.Execute(ctx, testWorkout(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["pdf"], second.Artifacts["pdf"]) {
		t.Error("cached pdf differs from the rendered one")
	}

	// Another owner with identical content shares the entries.
	other := testWorkout()
	other.Owner = "ben"
	shared, err := r.Execute(ctx, other, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !shared.CacheInfo.RenderHit {
		t.Error("identical workout of another owner should hit the cache")
	}

	refreshed, err := r.Execute(ctx, testWorkout(), Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(refreshed.CacheInfo.Hits) != 0 {
		t.Errorf("Refresh hits = %v, want none", refreshed.CacheInfo.Hits)
	}

	german, err := r.Execute(ctx, testWorkout(), Options{Formats: opts.Formats, Language: "de"})
	if err != nil {
		t.Fatal(err)
	}
	if len(german.CacheInfo.Hits) != 0 {
		t.Errorf("other language hits = %v, want none", german.CacheInfo.Hits)
	}

	edited := testWorkout()
	edited.Days[0].Description = "Legs and core"
	changed, err := r.Execute(ctx, edited, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed.CacheInfo.Hits) != 0 {
		t.Errorf("edited workout hits = %v, want none", changed.CacheInfo.Hits)
	}
}

func TestExecuteUndatedWorkout(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	w := testWorkout()
	w.CreatedAt = time.Time{}
	today := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	opts := Options{Formats: []string{FormatJSON}, Today: today}

	for i := 0; i < 2; i++ {
		res, err := r.Execute(ctx, w, opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.CacheInfo.Hits) != 0 {
			t.Errorf("run %d hits = %v, undated workouts must not be cached", i, res.CacheInfo.Hits)
		}
		if !strings.Contains(res.Document.Footer, "31.01.2025") {
			t.Errorf("Footer = %q, want today's date", res.Document.Footer)
		}
	}
}

func TestExecuteEmptyWorkout(t *testing.T) {
	w := testWorkout()
	w.Days = nil
	res, err := quietRunner(nil).Execute(context.Background(), w, Options{Formats: []string{FormatPDF, FormatHTML}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Layout.Empty() {
		t.Error("layout should be empty")
	}
	if !bytes.Contains(res.Artifacts["html"], []byte("empty workout")) {
		t.Error("html should carry the empty message")
	}
}

func TestExecuteInvalidWorkout(t *testing.T) {
	w := testWorkout()
	w.Days[0].Sets[0].Exercises[0].Name = ""
	_, err := quietRunner(nil).Execute(context.Background(), w, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidWorkout) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidWorkout)
	}
}

func TestRunnerLayout(t *testing.T) {
	l, err := quietRunner(nil).Layout(testWorkout(), Options{WeightColumns: 3})
	if err != nil {
		t.Fatal(err)
	}
	if l.Grid.Columns != 6 {
		t.Errorf("Columns = %d, want 6", l.Grid.Columns)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, rows int, _ time.Duration, err error) {
	h.add("layout")
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _, format string, _ int, _ time.Duration, _ error) {
	h.add("render:" + format)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, format string)  { h.add("hit:" + format) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, format string) { h.add("miss:" + format) }

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), testWorkout(), Options{Formats: []string{FormatJSON}}); err != nil {
			t.Fatal(err)
		}
	}

	want := "layout,miss:json,render:json,layout,hit:json"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}
